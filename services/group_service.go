// services/group_service.go - Group membership business logic
package services

import (
	"errors"
	"strings"

	"pickleball/apperr"
	"pickleball/models"

	"gorm.io/gorm"
)

type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

type GroupResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	CreatorID uint   `json:"creator_id"`
}

type MemberResponse struct {
	ID       uint    `json:"id"`
	Email    *string `json:"email"`
	Name     string  `json:"name"`
	PhotoURL string  `json:"photo_url"`
	IsGuest  bool    `json:"is_guest"`
}

// CreateGroup persists a group and adds the creator as its first member in
// the same transaction.
func (s *GroupService) CreateGroup(name string, creatorID uint) (*GroupResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("Group name is required")
	}

	group := models.Group{Name: name, CreatorID: creatorID}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		return addMemberEdge(tx, group.ID, creatorID)
	})
	if err != nil {
		return nil, err
	}

	return toGroupResponse(&group), nil
}

// MyGroups returns the groups a user belongs to, ordered by name.
func (s *GroupService) MyGroups(userID uint) ([]GroupResponse, error) {
	var groups []models.Group
	if err := s.db.
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.name ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}

	result := make([]GroupResponse, 0, len(groups))
	for i := range groups {
		result = append(result, *toGroupResponse(&groups[i]))
	}
	return result, nil
}

// Members lists a group's members sorted by email, case-insensitive
// ascending. Guest members have no email and sort last.
func (s *GroupService) Members(groupID uint) ([]MemberResponse, error) {
	if err := s.requireGroup(groupID); err != nil {
		return nil, err
	}

	var users []models.User
	if err := s.db.
		Joins("JOIN group_members ON group_members.user_id = users.id").
		Where("group_members.group_id = ?", groupID).
		Order("users.email IS NULL, lower(coalesce(users.email, ''))").
		Find(&users).Error; err != nil {
		return nil, err
	}

	return toMemberResponses(users), nil
}

// AddMemberByEmail adds an already-registered user to the group. The email
// match is case-insensitive exact; the insert is idempotent.
func (s *GroupService) AddMemberByEmail(groupID uint, email string) (*MemberResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperr.Validation("Member email is required")
	}

	if err := s.requireGroup(groupID); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.Where("lower(email) = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("No registered user found with that email")
		}
		return nil, err
	}

	if err := addMemberEdge(s.db, groupID, user.ID); err != nil {
		return nil, err
	}
	return toMemberResponse(&user), nil
}

// AddGuestMember creates a lightweight guest account with just a display
// name and adds it to the group. Guests have no email or password and can
// never log in.
func (s *GroupService) AddGuestMember(groupID uint, displayName string) (*MemberResponse, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, apperr.Validation("Display name is required")
	}

	if err := s.requireGroup(groupID); err != nil {
		return nil, err
	}

	guest := models.User{Name: displayName, Role: models.RoleGuest}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&guest).Error; err != nil {
			return err
		}
		return addMemberEdge(tx, groupID, guest.ID)
	})
	if err != nil {
		return nil, err
	}

	return toMemberResponse(&guest), nil
}

// RemoveMember removes a user from the group. Allowed for the group creator
// or for a member removing themself.
func (s *GroupService) RemoveMember(groupID, userID, requesterID uint) error {
	group, err := s.findGroup(groupID)
	if err != nil {
		return err
	}

	if !DecideMemberRemoval(group, userID, requesterID).Allowed() {
		return apperr.Forbidden("Not allowed to remove this member")
	}

	return s.db.Exec(
		"DELETE FROM group_members WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	).Error
}

// DeleteGroup deletes the group and all its membership edges. Creator only.
func (s *GroupService) DeleteGroup(groupID, requesterID uint) error {
	group, err := s.findGroup(groupID)
	if err != nil {
		return err
	}

	if !CanDeleteGroup(group, requesterID) {
		return apperr.Forbidden("Only the group creator can delete this group")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM group_members WHERE group_id = ?", groupID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, groupID).Error
	})
}

// SearchMembers matches members case-insensitively on a substring of their
// display name or email. A blank query returns an empty list, not an error.
func (s *GroupService) SearchMembers(groupID uint, query string) ([]MemberResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []MemberResponse{}, nil
	}

	if err := s.requireGroup(groupID); err != nil {
		return nil, err
	}

	pattern := "%" + strings.ToLower(query) + "%"
	var users []models.User
	if err := s.db.
		Joins("JOIN group_members ON group_members.user_id = users.id").
		Where("group_members.group_id = ?", groupID).
		Where("lower(users.name) LIKE ? OR lower(coalesce(users.email, '')) LIKE ?", pattern, pattern).
		Find(&users).Error; err != nil {
		return nil, err
	}

	return toMemberResponses(users), nil
}

// ================== HELPER FUNCTIONS ==================

// addMemberEdge inserts a membership edge; a duplicate insert is a no-op so
// the creator-add-on-create flow is safe to retry.
func addMemberEdge(tx *gorm.DB, groupID, userID uint) error {
	return tx.Exec(
		"INSERT INTO group_members (group_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		groupID, userID,
	).Error
}

func (s *GroupService) findGroup(groupID uint) (*models.Group, error) {
	var group models.Group
	if err := s.db.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Group not found")
		}
		return nil, err
	}
	return &group, nil
}

func (s *GroupService) requireGroup(groupID uint) error {
	_, err := s.findGroup(groupID)
	return err
}

func toGroupResponse(g *models.Group) *GroupResponse {
	return &GroupResponse{ID: g.ID, Name: g.Name, CreatorID: g.CreatorID}
}

func toMemberResponse(u *models.User) *MemberResponse {
	return &MemberResponse{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		PhotoURL: u.PhotoURL,
		IsGuest:  u.IsGuest(),
	}
}

func toMemberResponses(users []models.User) []MemberResponse {
	result := make([]MemberResponse, 0, len(users))
	for i := range users {
		result = append(result, *toMemberResponse(&users[i]))
	}
	return result
}
