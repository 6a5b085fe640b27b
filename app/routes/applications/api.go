package applications

import (
	"github.com/gofiber/fiber/v2"

	"github.com/akhyar02/scholar-draft-sub000/app/config"
	"github.com/akhyar02/scholar-draft-sub000/app/database"
	"github.com/akhyar02/scholar-draft-sub000/app/forms"
	"github.com/akhyar02/scholar-draft-sub000/app/routes/respond"
	"github.com/akhyar02/scholar-draft-sub000/app/services"
)

func CreateDraftAPI(c *fiber.Ctx) error {
	type createRequest struct {
		ScholarshipID string `json:"scholarship_id"`
	}
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "invalid request body")
	}
	if req.ScholarshipID == "" {
		return respond.BadRequest(c, "scholarship_id is required")
	}

	studentID := c.Locals("user_id").(string)
	studentEmail := c.Locals("user_email").(string)

	app, err := services.CreateDraftApplication(config.GetDB(), req.ScholarshipID, studentID, studentEmail)
	if err != nil {
		return respond.Error(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"applicationId": app.ID})
}

func ListMyApplicationsAPI(c *fiber.Ctx) error {
	studentID := c.Locals("user_id").(string)
	apps, err := database.ListStudentApplications(config.GetDB(), studentID)
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"applications": apps})
}

func GetApplicationAPI(c *fiber.Ctx) error {
	studentID := c.Locals("user_id").(string)
	app, err := services.GetOwnedApplication(config.GetDB(), c.Params("id"), studentID)
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"application": app})
}

func GetFormAPI(c *fiber.Ctx) error {
	studentID := c.Locals("user_id").(string)
	form, err := services.GetOwnedForm(config.GetDB(), c.Params("id"), studentID)
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"form": form})
}

func UpdateFormAPI(c *fiber.Ctx) error {
	var patch forms.FormPatch
	if err := c.BodyParser(&patch); err != nil {
		return respond.BadRequest(c, "invalid request body")
	}

	studentID := c.Locals("user_id").(string)
	merged, err := services.UpdateDraftForm(config.GetDB(), c.Params("id"), studentID, &patch)
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"form": merged})
}

func RecreateLegacyDraftAPI(c *fiber.Ctx) error {
	studentID := c.Locals("user_id").(string)
	studentEmail := c.Locals("user_email").(string)

	app, err := services.RecreateLegacyDraft(config.GetDB(), c.Params("id"), studentID, studentEmail)
	if err != nil {
		return respond.Error(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"applicationId": app.ID})
}

func ListAttachmentsAPI(c *fiber.Ctx) error {
	studentID := c.Locals("user_id").(string)
	if _, err := services.GetOwnedApplication(config.GetDB(), c.Params("id"), studentID); err != nil {
		return respond.Error(c, err)
	}
	attachments, err := database.GetAttachments(config.GetDB(), c.Params("id"))
	if err != nil {
		return respond.Error(c, err)
	}

	// Required slots are resolved from the current form so the client
	// can render upload placeholders without deriving keys itself.
	var required []string
	if form, err := services.GetOwnedForm(config.GetDB(), c.Params("id"), studentID); err == nil && !form.IsLegacy {
		if parsed, perr := forms.ParseFormV2(form.Payload); perr == nil {
			for slot := range forms.RequiredSlots(parsed) {
				required = append(required, slot)
			}
		}
	}

	return c.JSON(fiber.Map{
		"attachments":    attachments,
		"required_slots": required,
	})
}

func DeclareAttachmentAPI(c *fiber.Ctx) error {
	type declareRequest struct {
		SlotKey   string `json:"slot_key"`
		FileName  string `json:"file_name"`
		SizeBytes int64  `json:"size_bytes"`
		MimeType  string `json:"mime_type"`
	}
	var req declareRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "invalid request body")
	}

	studentID := c.Locals("user_id").(string)
	att, uploadURL, err := services.DeclareAttachment(c.Context(), config.GetDB(),
		services.GetStorage(), c.Params("id"), studentID,
		req.SlotKey, req.FileName, req.MimeType, req.SizeBytes)
	if err != nil {
		return respond.Error(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"attachment": att,
		"upload_url": uploadURL,
	})
}

func SubmitAPI(c *fiber.Ctx) error {
	studentID := c.Locals("user_id").(string)
	studentEmail := c.Locals("user_email").(string)
	store := services.GetStorage()

	err := services.SubmitApplication(c.Context(), config.GetDB(), store,
		store.MaxSizeBytes(), c.Params("id"), studentID, studentEmail)
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// PublicSubmitAPI is the no-login flow: a complete form plus declared
// attachments, synthesized directly into a submitted application.
func PublicSubmitAPI(c *fiber.Ctx) error {
	type publicRequest struct {
		ScholarshipID string                    `json:"scholarship_id"`
		Form          *forms.FormV2             `json:"form"`
		Attachments   []services.DeclaredUpload `json:"attachments"`
	}
	var req publicRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "invalid request body")
	}
	if req.ScholarshipID == "" || req.Form == nil {
		return respond.BadRequest(c, "scholarship_id and form are required")
	}

	store := services.GetStorage()
	applicationID, err := services.SubmitPublicApplication(c.Context(), config.GetDB(),
		store, store.MaxSizeBytes(), req.ScholarshipID, req.Form, req.Attachments)
	if err != nil {
		return respond.Error(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"applicationId": applicationID})
}
