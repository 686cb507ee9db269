// services/match_service.go - Match recording business logic
package services

import (
	"errors"
	"fmt"
	"time"

	"pickleball/apperr"
	"pickleball/models"

	"gorm.io/gorm"
)

type MatchService struct {
	db *gorm.DB
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{db: db}
}

type CreateMatchInput struct {
	GroupID      *uint
	MatchType    models.MatchType
	TeamOneIDs   []uint
	TeamTwoIDs   []uint
	TeamOneScore *int
	TeamTwoScore *int
}

// CreateMatch validates team composition against the group roster and
// persists the match. Validation order: required fields, group existence,
// team sizes, player distinctness, group membership, user resolution.
func (s *MatchService) CreateMatch(in CreateMatchInput) (*models.Match, error) {
	if in.GroupID == nil || in.MatchType == "" || in.TeamOneIDs == nil || in.TeamTwoIDs == nil {
		return nil, apperr.Validation("groupId, matchType, teamOneUserIds and teamTwoUserIds are required")
	}
	if !in.MatchType.Valid() {
		return nil, apperr.Validation("matchType must be SINGLES or DOUBLES")
	}

	var group models.Group
	if err := s.db.Preload("Members").First(&group, *in.GroupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Group not found")
		}
		return nil, err
	}

	expectedTeamSize := in.MatchType.TeamSize()
	if len(in.TeamOneIDs) != expectedTeamSize || len(in.TeamTwoIDs) != expectedTeamSize {
		return nil, apperr.Validation("Invalid team size for %s", in.MatchType)
	}

	unique := make(map[uint]struct{}, expectedTeamSize*2)
	for _, id := range in.TeamOneIDs {
		unique[id] = struct{}{}
	}
	for _, id := range in.TeamTwoIDs {
		unique[id] = struct{}{}
	}
	if len(unique) != expectedTeamSize*2 {
		return nil, apperr.Validation("Each player must be unique in a match")
	}

	roster := make(map[uint]struct{}, len(group.Members))
	for _, m := range group.Members {
		roster[m.ID] = struct{}{}
	}
	for id := range unique {
		if _, ok := roster[id]; !ok {
			return nil, apperr.Validation("All selected users must be members of the group")
		}
	}

	// Defensive re-check: membership rows could outlive their users.
	teamOne, err := s.resolveUsers(in.TeamOneIDs)
	if err != nil {
		return nil, err
	}
	teamTwo, err := s.resolveUsers(in.TeamTwoIDs)
	if err != nil {
		return nil, err
	}

	match := models.Match{
		GroupID:   in.GroupID,
		MatchType: in.MatchType,
		TeamOne:   teamOne,
		TeamTwo:   teamTwo,
		MatchDate: time.Now(),
	}
	if in.TeamOneScore != nil && in.TeamTwoScore != nil {
		match.Score = fmt.Sprintf("%d-%d", *in.TeamOneScore, *in.TeamTwoScore)
	}

	if err := s.db.Create(&match).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

// UpdateScore overwrites a match's score unconditionally.
func (s *MatchService) UpdateScore(matchID uint, score string) (*models.Match, error) {
	var match models.Match
	if err := s.db.Preload("TeamOne").Preload("TeamTwo").First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Match not found with id: %d", matchID)
		}
		return nil, err
	}

	match.Score = score
	if err := s.db.Model(&match).Update("score", score).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

// ListMatches returns all recorded matches with their teams, newest first.
func (s *MatchService) ListMatches() ([]models.Match, error) {
	var matches []models.Match
	err := s.db.Preload("TeamOne").Preload("TeamTwo").
		Order("match_date DESC").
		Find(&matches).Error
	return matches, err
}

func (s *MatchService) resolveUsers(ids []uint) ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users, ids).Error; err != nil {
		return nil, err
	}
	if len(users) != len(ids) {
		return nil, apperr.Validation("One or more selected users were not found")
	}
	return users, nil
}
