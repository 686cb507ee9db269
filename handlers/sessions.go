// handlers/sessions.go - Session lifecycle endpoints
package handlers

import (
	"pickleball/middleware"
	"pickleball/services"

	"github.com/gofiber/fiber/v2"
)

type CreateSessionRequest struct {
	Name    string `json:"name"`
	GroupID *uint  `json:"group_id"`
}

type JoinSessionRequest struct {
	PlayerName string `json:"player_name"`
}

// CreateSession creates a new joinable session
// POST /api/sessions
func CreateSession(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(400, "Invalid request body")
	}

	session, err := sessionService.Create(req.Name, req.GroupID, userID)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(session)
}

// GetMySessions lists sessions created by the caller, newest first
// GET /api/sessions/my
func GetMySessions(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	sessions, err := sessionService.MySessions(userID)
	if err != nil {
		return err
	}
	return c.JSON(sessions)
}

// GetSessionsByGroup lists a group's sessions, newest first
// GET /api/sessions/by-group/:groupId
func GetSessionsByGroup(c *fiber.Ctx) error {
	groupID, err := paramID(c, "groupId")
	if err != nil {
		return err
	}

	sessions, err := sessionService.ByGroup(groupID)
	if err != nil {
		return err
	}
	return c.JSON(sessions)
}

// GetSession returns session details by join code (public: the code is the
// capability)
// GET /api/sessions/:code
func GetSession(c *fiber.Ctx) error {
	session, err := sessionService.GetByCode(c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(session)
}

// JoinSession joins a session by entering a name (public)
// POST /api/sessions/:code/join
func JoinSession(c *fiber.Ctx) error {
	var req JoinSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(400, "Invalid request body")
	}

	participant, err := sessionService.Join(c.Params("code"), req.PlayerName)
	if err != nil {
		return err
	}

	sessionFeed.Publish(normalizeCode(c.Params("code")), services.FeedEvent{
		Type:    services.FeedParticipantJoined,
		Payload: participant,
	})

	return c.Status(201).JSON(participant)
}

// GetParticipants lists everyone in the session (public)
// GET /api/sessions/:code/participants
func GetParticipants(c *fiber.Ctx) error {
	participants, err := sessionService.Participants(c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(participants)
}

// CloseSession closes the session (creator only)
// PUT /api/sessions/:code/close
func CloseSession(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	session, err := sessionService.Close(c.Params("code"), userID)
	if err != nil {
		return err
	}

	sessionFeed.Publish(session.Code, services.FeedEvent{
		Type:    services.FeedSessionClosed,
		Payload: session,
	})

	return c.JSON(session)
}
