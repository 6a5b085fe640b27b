package review

import (
	"github.com/gofiber/fiber/v2"

	"github.com/akhyar02/scholar-draft-sub000/app/config"
	"github.com/akhyar02/scholar-draft-sub000/app/database"
	"github.com/akhyar02/scholar-draft-sub000/app/models"
	"github.com/akhyar02/scholar-draft-sub000/app/routes/respond"
	"github.com/akhyar02/scholar-draft-sub000/app/services"
)

func ListApplicationsAPI(c *fiber.Ctx) error {
	filters := database.ReviewFilters{
		Status:        c.Query("status"),
		ScholarshipID: c.Query("scholarship_id"),
		Limit:         c.QueryInt("limit", 50),
		Offset:        c.QueryInt("offset", 0),
	}
	if filters.Status != "" && !models.IsValidStatus(models.ApplicationStatus(filters.Status)) {
		return respond.BadRequest(c, "unknown status filter")
	}

	entries, total, err := database.ListApplicationsForReview(config.GetDB(), filters)
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{
		"applications": entries,
		"total":        total,
	})
}

// GetApplicationAPI returns an application with its form payload,
// attachments and full status history for the reviewer detail view.
func GetApplicationAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	id := c.Params("id")

	app, err := database.GetApplicationByID(db, id)
	if err != nil {
		return respond.Error(c, err)
	}
	formData, err := database.GetFormData(db, id)
	if err != nil {
		return respond.Error(c, err)
	}
	attachments, err := database.GetAttachments(db, id)
	if err != nil {
		return respond.Error(c, err)
	}
	history, err := database.GetStatusHistory(db, id)
	if err != nil {
		return respond.Error(c, err)
	}

	return c.JSON(fiber.Map{
		"application": app,
		"form":        formData,
		"attachments": attachments,
		"history":     history,
	})
}

func TransitionAPI(c *fiber.Ctx) error {
	type transitionRequest struct {
		To     models.ApplicationStatus `json:"to"`
		Reason string                   `json:"reason"`
	}
	var req transitionRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "invalid request body")
	}

	actorID := c.Locals("user_id").(string)
	if err := services.TransitionApplication(config.GetDB(), c.Params("id"), req.To, actorID, req.Reason); err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func ReopenAPI(c *fiber.Ctx) error {
	type reopenRequest struct {
		Reason string `json:"reason"`
	}
	var req reopenRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "invalid request body")
	}

	actorID := c.Locals("user_id").(string)
	if err := services.ReopenApplication(config.GetDB(), c.Params("id"), actorID, req.Reason); err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func UpdateNotesAPI(c *fiber.Ctx) error {
	type notesRequest struct {
		Notes string `json:"notes"`
	}
	var req notesRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "invalid request body")
	}

	if err := database.UpdateAdminNotes(config.GetDB(), c.Params("id"), req.Notes); err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
