// handlers/routes.go - Route registration
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"rcsinavim/middleware"
)

func SetupHealthRoutes(app *fiber.App, storage string) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"storage": storage,
			"time":    time.Now().UTC(),
		})
	})
}

// SetupAuthRoutes registers the public account routes behind the stricter
// auth rate limit.
func SetupAuthRoutes(app *fiber.App, h *AuthHandler, limit fiber.Handler) {
	app.Post("/register", limit, h.Register)
	app.Post("/login", limit, h.Login)
}

func SetupUserRoutes(app *fiber.App, h *UserHandler, auth *middleware.Auth) {
	app.Get("/users/:id", auth.Required(), h.GetUser)
	app.Post("/update-profile", auth.Required(), h.UpdateProfile)
}

func SetupFlashcardRoutes(app *fiber.App, h *FlashcardHandler, auth *middleware.Auth) {
	flashcards := app.Group("/flashcards", auth.Required())

	flashcards.Post("/deck", h.CreateDeck)
	flashcards.Get("/deck/:deck_id", h.GetDeck)
	flashcards.Post("/duel/challenge", h.Challenge)
	flashcards.Post("/duel/complete", h.Complete)
	flashcards.Get("/duel/:duel_id", h.GetDuel)
	flashcards.Get("/duels/:user_id", h.UserDuels)
}

func SetupFriendRoutes(app *fiber.App, h *FriendHandler, auth *middleware.Auth) {
	friends := app.Group("/friends", auth.Required())

	friends.Post("/search", h.Search)
	friends.Post("/request", h.SendRequest)
	friends.Get("/requests", h.Requests)
	friends.Post("/request/respond", h.Respond)
	friends.Get("/list", h.List)
	friends.Delete("/remove/:friend_id", h.Remove)
}
