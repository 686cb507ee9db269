// handlers/users.go - User profile endpoints
package handlers

import (
	"strings"
	"time"

	"pickleball/database"
	"pickleball/middleware"
	"pickleball/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type ProfileResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
	Role     string `json:"role"`
}

// GetProfile returns the current user's profile
// GET /api/user/profile
func GetProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(toProfileResponse(user))
}

// UpdateProfile updates name and/or photo URL (email is immutable)
// PUT /api/user/profile
func UpdateProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()
	if err := db.Model(user).Updates(map[string]interface{}{
		"name":       strings.TrimSpace(req.Name),
		"photo_url":  strings.TrimSpace(req.PhotoURL),
		"updated_at": time.Now(),
	}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	db.First(user, user.ID)
	return c.JSON(toProfileResponse(user))
}

// ChangePassword changes the current user's password
// PUT /api/user/password
func ChangePassword(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Current and new password are required"})
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Current password is incorrect"})
	}

	if len(req.NewPassword) < 6 {
		return c.Status(400).JSON(fiber.Map{"error": "New password must be at least 6 characters"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	db := database.GetDB()
	if err := db.Model(user).Update("password", string(hashed)).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update password"})
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

func currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		return nil, fiber.NewError(404, "User not found")
	}
	return &user, nil
}

func toProfileResponse(u *models.User) ProfileResponse {
	return ProfileResponse{
		ID:       u.ID,
		Email:    u.EmailOrEmpty(),
		Name:     u.Name,
		PhotoURL: u.PhotoURL,
		Role:     string(u.Role),
	}
}
