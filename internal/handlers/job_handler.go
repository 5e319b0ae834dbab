package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"campusmatch/internal/models"
	"campusmatch/internal/repositories"
)

type JobHandler struct {
	jobRepo repositories.JobRepository
}

func NewJobHandler(jobRepo repositories.JobRepository) *JobHandler {
	return &JobHandler{
		jobRepo: jobRepo,
	}
}

// HandleGetJob handles GET /job/:id. Always reports the current counters;
// per-student results are attached only once the job has completed, and a
// failed job surfaces its error message with no partial results.
func (h *JobHandler) HandleGetJob(c *fiber.Ctx) error {
	idParam := c.Params("id")
	jobID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	response := models.JobStatusResponse{
		JobID:             job.ID.String(),
		Status:            string(job.Status),
		TotalStudents:     job.TotalStudents,
		ProcessedStudents: job.ProcessedStudents,
	}

	if job.Status == models.JobStatusCompleted {
		results, err := h.jobRepo.FindResults(jobID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to load job results",
			})
		}
		response.Results = results
	}

	if job.Status == models.JobStatusFailed {
		response.ErrorMessage = job.ErrorMessage
	}

	return c.JSON(response)
}
