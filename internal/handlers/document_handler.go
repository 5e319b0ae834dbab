package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"campusmatch/internal/models"
	"campusmatch/internal/repositories"
	"campusmatch/internal/services"
)

type DocumentHandler struct {
	jobRepo   repositories.JobRepository
	docRepo   repositories.DocumentRepository
	generator services.DocumentGenerator
	indexer   services.IndexerService
	validate  *validator.Validate
}

func NewDocumentHandler(
	jobRepo repositories.JobRepository,
	docRepo repositories.DocumentRepository,
	generator services.DocumentGenerator,
	indexer services.IndexerService,
) *DocumentHandler {
	return &DocumentHandler{
		jobRepo:   jobRepo,
		docRepo:   docRepo,
		generator: generator,
		indexer:   indexer,
		validate:  validator.New(),
	}
}

// HandleGenerateDocument handles POST /documents/generate. Produces a
// personalized application document for one student of a finished job run.
func (h *DocumentHandler) HandleGenerateDocument(c *fiber.Ctx) error {
	var req models.GenerateDocumentRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_id format",
		})
	}

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	doc, err := h.generator.GeneratePersonalizedDocument(
		c.Context(),
		jobID,
		req.StudentEmail,
		req.Company,
		req.Role,
	)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.GenerateDocumentResponse{
		ID:           doc.ID.String(),
		StudentEmail: doc.StudentEmail,
		Company:      doc.Company,
		Role:         doc.Role,
		Content:      doc.Content,
	})
}

// HandleDeleteDocument handles DELETE /documents/:id. Removes the document's
// vector points and its relational rows; chunks go with the cascade.
func (h *DocumentHandler) HandleDeleteDocument(c *fiber.Ctx) error {
	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID format",
		})
	}

	if _, err := h.docRepo.FindByID(documentID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	if err := h.indexer.DeleteDocument(c.Context(), documentID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete document",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Document deleted",
	})
}
