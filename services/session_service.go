// services/session_service.go - Session lifecycle business logic
package services

import (
	"errors"
	"strings"
	"time"

	"pickleball/apperr"
	"pickleball/models"

	"gorm.io/gorm"
)

// ParticipantGuest tags participants who joined by code without an account.
// Registered-member participants are anticipated but not implemented yet.
const ParticipantGuest = "GUEST"

type SessionService struct {
	db    *gorm.DB
	codes *CodeGenerator
}

func NewSessionService(db *gorm.DB) *SessionService {
	s := &SessionService{db: db}
	s.codes = NewCodeGenerator(s.codeExists)
	return s
}

// SessionDetail is a session annotated with its live participant count and,
// when linked to a group, the group's display name (nil if the group no
// longer exists).
type SessionDetail struct {
	ID               uint                 `json:"id"`
	Code             string               `json:"code"`
	Name             string               `json:"name"`
	GroupID          *uint                `json:"group_id"`
	GroupName        *string              `json:"group_name"`
	Status           models.SessionStatus `json:"status"`
	CreatedAt        time.Time            `json:"created_at"`
	ParticipantCount int                  `json:"participant_count"`
}

type Participant struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
}

// Create opens a new ACTIVE session with a freshly allocated join code.
// A lost race on the code's unique index surfaces as a conflict error; the
// caller retries the request.
func (s *SessionService) Create(name string, groupID *uint, creatorID uint) (*SessionDetail, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("Session name is required")
	}

	code, err := s.codes.Generate()
	if err != nil {
		return nil, err
	}

	session := models.Session{
		Code:        code,
		Name:        name,
		GroupID:     groupID,
		CreatedByID: creatorID,
		Status:      models.SessionActive,
		CreatedAt:   time.Now(),
	}

	if err := s.db.Create(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Join code was just taken, please retry")
		}
		return nil, err
	}

	return s.toDetail(&session)
}

// GetByCode looks a session up by join code, case-insensitively. Public:
// the code itself is the capability.
func (s *SessionService) GetByCode(code string) (*SessionDetail, error) {
	session, err := s.findByCode(code)
	if err != nil {
		return nil, err
	}
	return s.toDetail(session)
}

// Join records a guest participant on an open session.
func (s *SessionService) Join(code, playerName string) (*Participant, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, apperr.Validation("Player name is required")
	}

	session, err := s.findByCode(code)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionClosed {
		return nil, apperr.Gone("This session is closed")
	}

	guest := models.GuestPlayer{
		SessionID:   session.ID,
		DisplayName: playerName,
		JoinedAt:    time.Now(),
	}
	if err := s.db.Create(&guest).Error; err != nil {
		return nil, err
	}

	return &Participant{ID: guest.ID, DisplayName: guest.DisplayName, Type: ParticipantGuest}, nil
}

// Close transitions a session ACTIVE→CLOSED. Creator only; closing an
// already-closed session leaves it closed.
func (s *SessionService) Close(code string, requesterID uint) (*SessionDetail, error) {
	session, err := s.findByCode(code)
	if err != nil {
		return nil, err
	}
	if !CanCloseSession(session, requesterID) {
		return nil, apperr.Forbidden("Only the session creator can close it")
	}

	session.Status = models.SessionClosed
	if err := s.db.Model(session).Update("status", models.SessionClosed).Error; err != nil {
		return nil, err
	}

	return s.toDetail(session)
}

// Participants lists everyone who joined the session, oldest first.
func (s *SessionService) Participants(code string) ([]Participant, error) {
	session, err := s.findByCode(code)
	if err != nil {
		return nil, err
	}

	var guests []models.GuestPlayer
	if err := s.db.Where("session_id = ?", session.ID).
		Order("joined_at ASC").
		Find(&guests).Error; err != nil {
		return nil, err
	}

	participants := make([]Participant, 0, len(guests))
	for _, g := range guests {
		participants = append(participants, Participant{
			ID:          g.ID,
			DisplayName: g.DisplayName,
			Type:        ParticipantGuest,
		})
	}
	return participants, nil
}

// MySessions returns the sessions created by a user, newest first.
func (s *SessionService) MySessions(userID uint) ([]SessionDetail, error) {
	var sessions []models.Session
	if err := s.db.Where("created_by_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return s.toDetails(sessions)
}

// ByGroup returns the sessions linked to a group, newest first.
func (s *SessionService) ByGroup(groupID uint) ([]SessionDetail, error) {
	var sessions []models.Session
	if err := s.db.Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return s.toDetails(sessions)
}

// ================== HELPER FUNCTIONS ==================

func (s *SessionService) codeExists(code string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Session{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (s *SessionService) findByCode(code string) (*models.Session, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var session models.Session
	if err := s.db.Where("code = ?", code).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Session not found")
		}
		return nil, err
	}
	return &session, nil
}

func (s *SessionService) toDetail(session *models.Session) (*SessionDetail, error) {
	var count int64
	if err := s.db.Model(&models.GuestPlayer{}).
		Where("session_id = ?", session.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}

	var groupName *string
	if session.GroupID != nil {
		var group models.Group
		if err := s.db.First(&group, *session.GroupID).Error; err == nil {
			groupName = &group.Name
		}
	}

	return &SessionDetail{
		ID:               session.ID,
		Code:             session.Code,
		Name:             session.Name,
		GroupID:          session.GroupID,
		GroupName:        groupName,
		Status:           session.Status,
		CreatedAt:        session.CreatedAt,
		ParticipantCount: int(count),
	}, nil
}

func (s *SessionService) toDetails(sessions []models.Session) ([]SessionDetail, error) {
	details := make([]SessionDetail, 0, len(sessions))
	for i := range sessions {
		d, err := s.toDetail(&sessions[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}
