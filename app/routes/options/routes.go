package options

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/akhyar02/scholar-draft-sub000/app/config"
	"github.com/akhyar02/scholar-draft-sub000/app/database"
	"github.com/akhyar02/scholar-draft-sub000/app/models"
	"github.com/akhyar02/scholar-draft-sub000/app/routes/auth"
	"github.com/akhyar02/scholar-draft-sub000/app/routes/respond"
	"github.com/akhyar02/scholar-draft-sub000/app/services"
)

func SetupOptionsRoutes(app *fiber.App) {
	// Public: the nested tree feeds the application form selectors.
	app.Get("/api/options/tree", GetOptionTreeAPI)

	admin := app.Group("/api/admin/options")
	admin.Use(auth.AuthMiddleware, auth.RequireRole("admin"))
	admin.Get("/", ListOptionItemsAPI)
	admin.Post("/", CreateOptionItemAPI)
	admin.Put("/:id", UpdateOptionItemAPI)
}

// GetOptionTreeAPI returns the campus→faculty→course tree plus the flat
// support-provider list.
func GetOptionTreeAPI(c *fiber.Ctx) error {
	set, err := services.LoadOptionSet(config.GetDB())
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{
		"campuses":  set.Campuses,
		"providers": set.Providers,
	})
}

func ListOptionItemsAPI(c *fiber.Ctx) error {
	items, err := database.GetAllOptionItems(config.GetDB())
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"options": items})
}

type optionRequest struct {
	Kind      models.OptionKind `json:"kind"`
	ParentID  *string           `json:"parent_id"`
	Label     string            `json:"label"`
	SortOrder int               `json:"sort_order"`
	IsActive  *bool             `json:"is_active"`
}

// validateParent enforces the tree shape: faculties hang off campuses,
// courses off faculties, campuses and providers have no parent.
func validateParent(kind models.OptionKind, parentID *string) string {
	switch kind {
	case models.OptionCampus, models.OptionSupportProvider:
		if parentID != nil {
			return string(kind) + " cannot have a parent"
		}
	case models.OptionFaculty:
		if parentID == nil {
			return "faculty requires a campus parent"
		}
		if parent, err := database.GetOptionItemByID(config.GetDB(), *parentID); err != nil || parent.Kind != models.OptionCampus {
			return "faculty parent must be an existing campus"
		}
	case models.OptionCourse:
		if parentID == nil {
			return "course requires a faculty parent"
		}
		if parent, err := database.GetOptionItemByID(config.GetDB(), *parentID); err != nil || parent.Kind != models.OptionFaculty {
			return "course parent must be an existing faculty"
		}
	default:
		return "unknown option kind"
	}
	return ""
}

func CreateOptionItemAPI(c *fiber.Ctx) error {
	var req optionRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.Label) == "" {
		return respond.BadRequest(c, "label is required")
	}
	if msg := validateParent(req.Kind, req.ParentID); msg != "" {
		return respond.BadRequest(c, msg)
	}

	item := &models.OptionItem{
		Kind:      req.Kind,
		ParentID:  req.ParentID,
		Label:     req.Label,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if err := database.CreateOptionItem(config.GetDB(), item); err != nil {
		return respond.Error(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"option": item})
}

func UpdateOptionItemAPI(c *fiber.Ctx) error {
	var req optionRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "invalid request body")
	}

	item, err := database.GetOptionItemByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return respond.Error(c, err)
	}

	if strings.TrimSpace(req.Label) != "" {
		item.Label = req.Label
	}
	item.SortOrder = req.SortOrder
	if req.IsActive != nil {
		// Deactivating a node with active children would orphan them.
		if !*req.IsActive && item.IsActive {
			count, err := database.CountOptionChildren(config.GetDB(), item.ID)
			if err != nil {
				return respond.Error(c, err)
			}
			if count > 0 {
				return respond.BadRequest(c, "deactivate child options first")
			}
		}
		item.IsActive = *req.IsActive
	}

	if err := database.UpdateOptionItem(config.GetDB(), item); err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"option": item})
}
