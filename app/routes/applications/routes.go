package applications

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/akhyar02/scholar-draft-sub000/app/config"
	"github.com/akhyar02/scholar-draft-sub000/app/database"
	"github.com/akhyar02/scholar-draft-sub000/app/routes/auth"
	"github.com/akhyar02/scholar-draft-sub000/app/services"
)

func SetupApplicationsRoutes(app *fiber.App) {
	pages := app.Group("/applications")
	pages.Use(auth.AuthMiddleware)
	pages.Get("/", ApplicationsPage)
	pages.Get("/:id", ApplicationFormPage)

	api := app.Group("/api/applications")
	api.Use(auth.AuthMiddleware)
	api.Post("/", CreateDraftAPI)
	api.Get("/", ListMyApplicationsAPI)
	api.Get("/:id", GetApplicationAPI)
	api.Get("/:id/form", GetFormAPI)
	api.Patch("/:id/form", UpdateFormAPI)
	api.Post("/:id/recreate", RecreateLegacyDraftAPI)
	api.Get("/:id/attachments", ListAttachmentsAPI)
	api.Post("/:id/attachments", DeclareAttachmentAPI)
	api.Post("/:id/submit", SubmitAPI)

	// The no-login flow is rate limited per client address. The counter
	// is in-memory and best effort: it resets on restart and is not
	// shared across instances.
	app.Post("/api/public/applications", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
	}), PublicSubmitAPI)
}

func ApplicationsPage(c *fiber.Ctx) error {
	studentID := c.Locals("user_id").(string)
	apps, err := database.ListStudentApplications(config.GetDB(), studentID)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Render("applications/index", fiber.Map{
		"Title":        "My Applications - Scholarship Portal",
		"CurrentPage":  "applications",
		"Applications": apps,
	})
}

func ApplicationFormPage(c *fiber.Ctx) error {
	studentID := c.Locals("user_id").(string)
	form, err := services.GetOwnedForm(config.GetDB(), c.Params("id"), studentID)
	if err != nil {
		return fiber.ErrNotFound
	}

	return c.Render("applications/form", fiber.Map{
		"Title":       "Application - Scholarship Portal",
		"CurrentPage": "applications",
		"Form":        form,
		"IsLegacy":    form.IsLegacy,
	})
}
