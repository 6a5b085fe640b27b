package scholarships

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/akhyar02/scholar-draft-sub000/app/config"
	"github.com/akhyar02/scholar-draft-sub000/app/database"
	"github.com/akhyar02/scholar-draft-sub000/app/models"
	"github.com/akhyar02/scholar-draft-sub000/app/routes/respond"
)

// GetScholarshipsAPI returns published scholarships with optional search
// and pagination.
func GetScholarshipsAPI(c *fiber.Ctx) error {
	filters := database.ScholarshipFilters{
		Search:        c.Query("search"),
		PublishedOnly: true,
		OpenOnly:      c.Query("open") != "false",
		Limit:         c.QueryInt("limit", 50),
		Offset:        c.QueryInt("offset", 0),
	}

	items, err := database.GetScholarships(config.GetDB(), filters)
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"scholarships": items})
}

func GetScholarshipByIDAPI(c *fiber.Ctx) error {
	scholarship, err := database.GetScholarshipByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return respond.Error(c, err)
	}
	if !scholarship.IsPublished {
		return c.Status(404).JSON(fiber.Map{
			"error": fiber.Map{"code": "NOT_FOUND", "message": "scholarship not found"},
		})
	}
	return c.JSON(fiber.Map{"scholarship": scholarship})
}

type scholarshipRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ProviderName string    `json:"provider_name"`
	Amount       float64   `json:"amount"`
	Deadline     time.Time `json:"deadline"`
	IsPublished  bool      `json:"is_published"`
}

func (r *scholarshipRequest) validate() string {
	if strings.TrimSpace(r.Title) == "" {
		return "title is required"
	}
	if r.Amount < 0 {
		return "amount cannot be negative"
	}
	if r.Deadline.IsZero() {
		return "deadline is required"
	}
	return ""
}

func CreateScholarshipAPI(c *fiber.Ctx) error {
	var req scholarshipRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return respond.BadRequest(c, msg)
	}

	scholarship := &models.Scholarship{
		Title:        req.Title,
		Description:  req.Description,
		ProviderName: req.ProviderName,
		Amount:       req.Amount,
		Deadline:     req.Deadline,
		IsPublished:  req.IsPublished,
	}
	if err := database.CreateScholarship(config.GetDB(), scholarship); err != nil {
		return respond.Error(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"scholarship": scholarship})
}

func UpdateScholarshipAPI(c *fiber.Ctx) error {
	var req scholarshipRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return respond.BadRequest(c, msg)
	}

	scholarship := &models.Scholarship{
		ID:           c.Params("id"),
		Title:        req.Title,
		Description:  req.Description,
		ProviderName: req.ProviderName,
		Amount:       req.Amount,
		Deadline:     req.Deadline,
		IsPublished:  req.IsPublished,
	}
	if err := database.UpdateScholarship(config.GetDB(), scholarship); err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func PublishScholarshipAPI(c *fiber.Ctx) error {
	type publishRequest struct {
		Published bool `json:"published"`
	}
	var req publishRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "invalid request body")
	}

	if err := database.SetScholarshipPublished(config.GetDB(), c.Params("id"), req.Published); err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func DeleteScholarshipAPI(c *fiber.Ctx) error {
	if err := database.SoftDeleteScholarship(config.GetDB(), c.Params("id")); err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
