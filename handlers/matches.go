// handlers/matches.go - Match recording endpoints
package handlers

import (
	"pickleball/models"
	"pickleball/services"

	"github.com/gofiber/fiber/v2"
)

type CreateMatchRequest struct {
	GroupID        *uint            `json:"group_id"`
	MatchType      models.MatchType `json:"match_type"`
	TeamOneUserIDs []uint           `json:"team_one_user_ids"`
	TeamTwoUserIDs []uint           `json:"team_two_user_ids"`
	TeamOneScore   *int             `json:"team_one_score"`
	TeamTwoScore   *int             `json:"team_two_score"`
}

type UpdateScoreRequest struct {
	Score string `json:"score"`
}

// GetMatches lists all recorded matches
// GET /api/matches
func GetMatches(c *fiber.Ctx) error {
	matches, err := matchService.ListMatches()
	if err != nil {
		return err
	}
	return c.JSON(matches)
}

// CreateMatch records a match for a group
// POST /api/matches
func CreateMatch(c *fiber.Ctx) error {
	var req CreateMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(400, "Invalid request body")
	}

	match, err := matchService.CreateMatch(services.CreateMatchInput{
		GroupID:      req.GroupID,
		MatchType:    req.MatchType,
		TeamOneIDs:   req.TeamOneUserIDs,
		TeamTwoIDs:   req.TeamTwoUserIDs,
		TeamOneScore: req.TeamOneScore,
		TeamTwoScore: req.TeamTwoScore,
	})
	if err != nil {
		return err
	}
	return c.Status(201).JSON(match)
}

// UpdateScore overwrites a match's score
// PUT /api/matches/:id
func UpdateScore(c *fiber.Ctx) error {
	matchID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(400, "Invalid request body")
	}

	match, err := matchService.UpdateScore(matchID, req.Score)
	if err != nil {
		return err
	}
	return c.JSON(match)
}
