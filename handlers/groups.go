// handlers/groups.go - Group membership endpoints
package handlers

import (
	"strconv"

	"pickleball/middleware"

	"github.com/gofiber/fiber/v2"
)

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type AddGroupMemberRequest struct {
	Email string `json:"email"`
}

type AddGuestMemberRequest struct {
	DisplayName string `json:"display_name"`
}

// GetMyGroups lists the groups the caller belongs to
// GET /api/groups/my
func GetMyGroups(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	groups, err := groupService.MyGroups(userID)
	if err != nil {
		return err
	}
	return c.JSON(groups)
}

// CreateGroup creates a new group with the caller as creator and first member
// POST /api/groups
func CreateGroup(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(400, "Invalid request body")
	}

	group, err := groupService.CreateGroup(req.Name, userID)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(group)
}

// DeleteGroup deletes a group (creator only)
// DELETE /api/groups/:id
func DeleteGroup(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	groupID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := groupService.DeleteGroup(groupID, userID); err != nil {
		return err
	}
	return c.SendStatus(204)
}

// AddMember adds a registered user to a group by email
// POST /api/groups/:id/add-member
func AddMember(c *fiber.Ctx) error {
	groupID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req AddGroupMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(400, "Invalid request body")
	}

	member, err := groupService.AddMemberByEmail(groupID, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(member)
}

// AddGuest adds a guest member (name only, no registration) to a group
// POST /api/groups/:id/add-guest
func AddGuest(c *fiber.Ctx) error {
	groupID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req AddGuestMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(400, "Invalid request body")
	}

	member, err := groupService.AddGuestMember(groupID, req.DisplayName)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(member)
}

// RemoveMember removes a member (creator, or the member themself)
// DELETE /api/groups/:groupId/members/:userId
func RemoveMember(c *fiber.Ctx) error {
	requesterID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	groupID, err := paramID(c, "groupId")
	if err != nil {
		return err
	}
	memberID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	if err := groupService.RemoveMember(groupID, memberID, requesterID); err != nil {
		return err
	}
	return c.SendStatus(204)
}

// GetMembers lists a group's members sorted by email
// GET /api/groups/:id/members
func GetMembers(c *fiber.Ctx) error {
	groupID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	members, err := groupService.Members(groupID)
	if err != nil {
		return err
	}
	return c.JSON(members)
}

// SearchMembers filters members by name or email substring
// GET /api/groups/:groupId/search-members?query=
func SearchMembers(c *fiber.Ctx) error {
	groupID, err := paramID(c, "groupId")
	if err != nil {
		return err
	}

	members, err := groupService.SearchMembers(groupID, c.Query("query"))
	if err != nil {
		return err
	}
	return c.JSON(members)
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, fiber.NewError(400, "Invalid "+name)
	}
	return uint(id), nil
}
