package scholarships

import (
	"github.com/gofiber/fiber/v2"

	"github.com/akhyar02/scholar-draft-sub000/app/config"
	"github.com/akhyar02/scholar-draft-sub000/app/database"
	"github.com/akhyar02/scholar-draft-sub000/app/routes/auth"
)

func SetupScholarshipsRoutes(app *fiber.App) {
	// Public pages
	app.Get("/scholarships", ScholarshipsPage)
	app.Get("/scholarships/:id", ScholarshipViewPage)

	// Public API
	api := app.Group("/api/scholarships")
	api.Get("/", GetScholarshipsAPI)
	api.Get("/:id", GetScholarshipByIDAPI)

	// Admin API
	admin := app.Group("/api/admin/scholarships")
	admin.Use(auth.AuthMiddleware, auth.RequireRole("admin"))
	admin.Post("/", CreateScholarshipAPI)
	admin.Put("/:id", UpdateScholarshipAPI)
	admin.Post("/:id/publish", PublishScholarshipAPI)
	admin.Delete("/:id", DeleteScholarshipAPI)
}

func ScholarshipsPage(c *fiber.Ctx) error {
	items, err := database.GetScholarships(config.GetDB(), database.ScholarshipFilters{
		PublishedOnly: true,
		OpenOnly:      true,
	})
	if err != nil {
		return c.Status(500).Render("error", fiber.Map{
			"Title":        "Error - Scholarship Portal",
			"CurrentPage":  "scholarships",
			"ErrorCode":    "500",
			"ErrorTitle":   "Database Error",
			"ErrorMessage": "Failed to load scholarships. Please try again later.",
			"ShowRetry":    true,
		})
	}

	return c.Render("scholarships/index", fiber.Map{
		"Title":        "Scholarships - Scholarship Portal",
		"CurrentPage":  "scholarships",
		"Scholarships": items,
	})
}

func ScholarshipViewPage(c *fiber.Ctx) error {
	scholarship, err := database.GetScholarshipByID(config.GetDB(), c.Params("id"))
	if err != nil || !scholarship.IsPublished {
		return fiber.ErrNotFound
	}

	return c.Render("scholarships/view", fiber.Map{
		"Title":       scholarship.Title + " - Scholarship Portal",
		"CurrentPage": "scholarships",
		"Scholarship": scholarship,
	})
}
