package review

import (
	"github.com/gofiber/fiber/v2"

	"github.com/akhyar02/scholar-draft-sub000/app/config"
	"github.com/akhyar02/scholar-draft-sub000/app/database"
	"github.com/akhyar02/scholar-draft-sub000/app/routes/auth"
)

func SetupReviewRoutes(app *fiber.App) {
	pages := app.Group("/review")
	pages.Use(auth.AuthMiddleware, auth.RequireRole("admin"))
	pages.Get("/", ReviewQueuePage)

	api := app.Group("/api/review/applications")
	api.Use(auth.AuthMiddleware, auth.RequireRole("admin"))
	api.Get("/", ListApplicationsAPI)
	api.Get("/:id", GetApplicationAPI)
	api.Post("/:id/transition", TransitionAPI)
	api.Post("/:id/reopen", ReopenAPI)
	api.Put("/:id/notes", UpdateNotesAPI)
}

func ReviewQueuePage(c *fiber.Ctx) error {
	entries, total, err := database.ListApplicationsForReview(config.GetDB(), database.ReviewFilters{
		Status: c.Query("status"),
		Limit:  50,
	})
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Render("review/index", fiber.Map{
		"Title":        "Review Queue - Scholarship Portal",
		"CurrentPage":  "review",
		"Applications": entries,
		"Total":        total,
		"Status":       c.Query("status"),
	})
}
