package auth

import (
	"database/sql"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/akhyar02/scholar-draft-sub000/app/config"
	"github.com/akhyar02/scholar-draft-sub000/app/database"
	"github.com/akhyar02/scholar-draft-sub000/app/models"
	"github.com/akhyar02/scholar-draft-sub000/app/routes/respond"
)

func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "invalid request body")
	}

	user, err := database.GetUserByEmail(config.GetDB(), req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(401).JSON(fiber.Map{
				"error": fiber.Map{"code": "INVALID_CREDENTIALS", "message": "Invalid credentials"},
			})
		}
		return respond.Error(c, err)
	}

	if !CheckPasswordHash(req.Password, user.Password) {
		return c.Status(401).JSON(fiber.Map{
			"error": fiber.Map{"code": "INVALID_CREDENTIALS", "message": "Invalid credentials"},
		})
	}

	roles, err := database.GetUserRoles(config.GetDB(), user.ID)
	if err != nil {
		return respond.Error(c, err)
	}
	user.Roles = roles

	roleNames := make([]string, len(roles))
	for i, role := range roles {
		roleNames[i] = role.Name
	}

	token, err := GenerateJWT(user.ID, user.Email, user.FirstName, user.LastName, roleNames)
	if err != nil {
		return respond.Error(c, err)
	}

	// Set JWT as HTTP-only cookie
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// RegisterAPI creates a student account with an empty profile.
func RegisterAPI(c *fiber.Ctx) error {
	type RegisterRequest struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "invalid request body")
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return respond.BadRequest(c, "a valid email is required")
	}
	if len(req.Password) < 8 {
		return respond.BadRequest(c, "password must be at least 8 characters")
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return respond.BadRequest(c, "first name is required")
	}

	if _, err := database.GetUserByEmail(config.GetDB(), req.Email); err == nil {
		return c.Status(409).JSON(fiber.Map{
			"error": fiber.Map{"code": "EMAIL_TAKEN", "message": "An account with this email already exists"},
		})
	} else if err != sql.ErrNoRows {
		return respond.Error(c, err)
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return respond.Error(c, err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if err := database.CreateUserWithRole(config.GetDB(), user, "student"); err != nil {
		return respond.Error(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"user_id": user.ID,
	})
}

func LogoutAPI(c *fiber.Ctx) error {
	// Clear JWT cookie
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{"success": true})
}

func ChangePasswordAPI(c *fiber.Ctx) error {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "invalid request body")
	}
	if len(req.NewPassword) < 8 {
		return respond.BadRequest(c, "password must be at least 8 characters")
	}

	userID := c.Locals("user_id").(string)
	user, err := database.GetUserByID(config.GetDB(), userID)
	if err != nil {
		return respond.Error(c, err)
	}

	if !CheckPasswordHash(req.CurrentPassword, user.Password) {
		return respond.BadRequest(c, "current password is incorrect")
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return respond.Error(c, err)
	}
	if err := database.UpdateUserPassword(config.GetDB(), userID, hashed); err != nil {
		return respond.Error(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
