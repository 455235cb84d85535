// handlers/auth.go - Registration and login
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rcsinavim/middleware"
	"rcsinavim/models"
	"rcsinavim/services"
	"rcsinavim/utils"
)

type AuthHandler struct {
	users *services.UserService
	auth  *middleware.Auth
}

func NewAuthHandler(users *services.UserService, auth *middleware.Auth) *AuthHandler {
	return &AuthHandler{users: users, auth: auth}
}

type RegisterRequest struct {
	services.RegisterInput
	Role models.Role `json:"role,omitempty"`
}

// Register creates a student account and returns a session token.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	// Staff accounts are provisioned with cmd/create-account.
	if req.Role != "" && req.Role != models.RoleStudent {
		return utils.JSONError(c, fiber.StatusForbidden, "Only student accounts can be registered")
	}

	user, err := h.users.Register(c.UserContext(), req.RegisterInput)
	if err != nil {
		return utils.Fail(c, err)
	}
	return h.respondWithToken(c, fiber.StatusCreated, user)
}

// Login authenticates a registered user
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.users.Login(c.UserContext(), req)
	if err != nil {
		return utils.Fail(c, err)
	}
	return h.respondWithToken(c, fiber.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c *fiber.Ctx, status int, user *models.User) error {
	token, err := h.auth.Issue(user)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.JSONSuccess(c, status, fiber.Map{
		"token": token,
		"user":  user,
	})
}
