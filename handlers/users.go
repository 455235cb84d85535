// handlers/users.go - Profiles
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rcsinavim/middleware"
	"rcsinavim/services"
	"rcsinavim/utils"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetUser returns the full record for the caller and the public summary for
// anyone else.
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID := c.Params("id")
	user, err := h.users.GetUser(c.UserContext(), userID)
	if err != nil {
		return utils.Fail(c, err)
	}

	if userID == middleware.UserID(c) {
		return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"user": user})
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"user": user.Summary()})
}

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.users.UpdateProfile(c.UserContext(), middleware.UserID(c), req.Name); err != nil {
		return utils.Fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"message": "Profil güncellendi"})
}
