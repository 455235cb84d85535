// handlers/flashcards.go - Shared decks and duels
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rcsinavim/middleware"
	"rcsinavim/services"
	"rcsinavim/utils"
)

const actingUserMismatch = "You can only act on your own behalf"

type FlashcardHandler struct {
	decks     *services.DeckService
	duels     *services.DuelService
	validator *services.Validator
}

func NewFlashcardHandler(decks *services.DeckService, duels *services.DuelService, validator *services.Validator) *FlashcardHandler {
	return &FlashcardHandler{decks: decks, duels: duels, validator: validator}
}

type ChallengeRequest struct {
	ChallengerID string `json:"challenger_id" validate:"required"`
	OpponentID   string `json:"opponent_id" validate:"required"`
	DeckID       string `json:"deck_id" validate:"required"`
}

// CompleteDuelRequest uses pointers so that a missing field is told apart
// from an explicit zero.
type CompleteDuelRequest struct {
	DuelID       string   `json:"duel_id" validate:"required"`
	UserID       string   `json:"user_id" validate:"required"`
	Score        *int     `json:"score" validate:"required"`
	CorrectCount *int     `json:"correct_count" validate:"required"`
	TotalCount   *int     `json:"total_count" validate:"required"`
	TimeSpent    *float64 `json:"time_spent" validate:"required"`
}

func (h *FlashcardHandler) CreateDeck(c *fiber.Ctx) error {
	var req services.CreateDeckInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.CreatorID == "" {
		req.CreatorID = middleware.UserID(c)
	}
	if req.CreatorID != middleware.UserID(c) {
		return utils.JSONError(c, fiber.StatusForbidden, actingUserMismatch)
	}

	deckID, err := h.decks.CreateDeck(c.UserContext(), req)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, fiber.Map{"deck_id": deckID})
}

func (h *FlashcardHandler) GetDeck(c *fiber.Ctx) error {
	deck, err := h.decks.GetDeck(c.UserContext(), c.Params("deck_id"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"deck": deck})
}

func (h *FlashcardHandler) Challenge(c *fiber.Ctx) error {
	var req ChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return utils.Fail(c, err)
	}
	if req.ChallengerID != middleware.UserID(c) {
		return utils.JSONError(c, fiber.StatusForbidden, actingUserMismatch)
	}

	duelID, err := h.duels.CreateDuel(c.UserContext(), req.ChallengerID, req.OpponentID, req.DeckID)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, fiber.Map{"duel_id": duelID})
}

func (h *FlashcardHandler) Complete(c *fiber.Ctx) error {
	var req CompleteDuelRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return utils.Fail(c, err)
	}
	if req.UserID != middleware.UserID(c) {
		return utils.JSONError(c, fiber.StatusForbidden, actingUserMismatch)
	}

	err := h.duels.SubmitResult(c.UserContext(), req.DuelID, req.UserID, services.ResultInput{
		Score:        *req.Score,
		CorrectCount: *req.CorrectCount,
		TotalCount:   *req.TotalCount,
		TimeSpent:    *req.TimeSpent,
	})
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"message": "Sonuç kaydedildi."})
}

func (h *FlashcardHandler) GetDuel(c *fiber.Ctx) error {
	duel, err := h.duels.GetDuel(c.UserContext(), c.Params("duel_id"))
	if err != nil {
		return utils.Fail(c, err)
	}
	if !duel.IsParticipant(middleware.UserID(c)) {
		return utils.Fail(c, services.ErrNotParticipant)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"duel": duel})
}

func (h *FlashcardHandler) UserDuels(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	if userID != middleware.UserID(c) {
		return utils.JSONError(c, fiber.StatusForbidden, actingUserMismatch)
	}

	duels, err := h.duels.GetUserDuels(c.UserContext(), userID)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"duels": duels})
}
