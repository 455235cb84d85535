// handlers/friends.go - Friend search, requests and list
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rcsinavim/middleware"
	"rcsinavim/models"
	"rcsinavim/services"
	"rcsinavim/utils"
)

const searchLimit = 20

type FriendHandler struct {
	friends *services.FriendService
	users   *services.UserService
}

func NewFriendHandler(friends *services.FriendService, users *services.UserService) *FriendHandler {
	return &FriendHandler{friends: friends, users: users}
}

type SearchRequest struct {
	Query string `json:"query"`
}

type FriendRequestBody struct {
	ReceiverID string `json:"receiver_id"`
}

type RespondRequest struct {
	RequestID string `json:"request_id"`
	Action    string `json:"action"`
}

func (h *FriendHandler) Search(c *fiber.Ctx) error {
	var req SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	users, err := h.users.SearchUsers(c.UserContext(), req.Query, middleware.UserID(c), searchLimit)
	if err != nil {
		return utils.Fail(c, err)
	}

	results := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		results = append(results, u.Summary())
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"users": results})
}

func (h *FriendHandler) SendRequest(c *fiber.Ctx) error {
	var req FriendRequestBody
	if err := c.BodyParser(&req); err != nil || req.ReceiverID == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "receiver_id is required")
	}

	if err := h.friends.SendRequest(c.UserContext(), middleware.UserID(c), req.ReceiverID); err != nil {
		return utils.Fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"message": "İstek gönderildi."})
}

func (h *FriendHandler) Requests(c *fiber.Ctx) error {
	requests, err := h.friends.PendingRequests(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"requests": requests})
}

func (h *FriendHandler) Respond(c *fiber.Ctx) error {
	var req RespondRequest
	if err := c.BodyParser(&req); err != nil || req.RequestID == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "request_id is required")
	}

	if err := h.friends.Respond(c.UserContext(), req.RequestID, middleware.UserID(c), req.Action); err != nil {
		return utils.Fail(c, err)
	}

	message := "İstek reddedildi."
	if req.Action == services.ActionAccept {
		message = "İstek kabul edildi."
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"message": message})
}

func (h *FriendHandler) List(c *fiber.Ctx) error {
	friends, err := h.friends.ListFriends(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"friends": friends})
}

func (h *FriendHandler) Remove(c *fiber.Ctx) error {
	if err := h.friends.RemoveFriend(c.UserContext(), middleware.UserID(c), c.Params("friend_id")); err != nil {
		return utils.Fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"message": "Arkadaş silindi."})
}
