package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/akhyar02/scholar-draft-sub000/app/config"
	"github.com/akhyar02/scholar-draft-sub000/app/database"
	"github.com/akhyar02/scholar-draft-sub000/app/routes/auth"
	"github.com/akhyar02/scholar-draft-sub000/app/routes/respond"
)

func SetupDashboardRoutes(app *fiber.App) {
	pages := app.Group("/dashboard")
	pages.Use(auth.AuthMiddleware, auth.RequireRole("admin"))
	pages.Get("/", DashboardPage)

	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware, auth.RequireRole("admin"))
	api.Get("/stats", GetStatsAPI)
}

func DashboardPage(c *fiber.Ctx) error {
	stats, err := database.GetDashboardStats(config.GetDB())
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Render("dashboard/index", fiber.Map{
		"Title":       "Dashboard - Scholarship Portal",
		"CurrentPage": "dashboard",
		"Stats":       stats,
	})
}

func GetStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetDashboardStats(config.GetDB())
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"stats": stats})
}
