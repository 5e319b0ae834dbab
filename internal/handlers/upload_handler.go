package handlers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"campusmatch/internal/models"
	"campusmatch/internal/repositories"
	"campusmatch/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	jobRepo        repositories.JobRepository
	storageService services.StorageService
	textExtractor  services.TextExtractor
	indexer        services.IndexerService
	worker         services.Worker
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	jobRepo repositories.JobRepository,
	storageService services.StorageService,
	textExtractor services.TextExtractor,
	indexer services.IndexerService,
	worker services.Worker,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		jobRepo:        jobRepo,
		storageService: storageService,
		textExtractor:  textExtractor,
		indexer:        indexer,
		worker:         worker,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /upload. Expects a multipart form with a "csv"
// student table and a "jobDesc" document (pdf/docx/txt). Both files are
// ingested into the index and a matching job is created and enqueued.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	csvFiles := form.File["csv"]
	jobDescFiles := form.File["jobDesc"]
	if len(csvFiles) == 0 || len(jobDescFiles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing files: both csv and jobDesc are required",
		})
	}

	csvFile := csvFiles[0]
	jobDescFile := jobDescFiles[0]

	if csvFile.Size > h.maxFileSize || jobDescFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	// Student table
	csvFilename, csvPath, err := h.storageService.SaveFile(csvFile, "students", []string{".csv"})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save student table: %v", err),
		})
	}

	records, err := h.textExtractor.ParseStudentCSV(csvPath)
	if err != nil {
		h.storageService.DeleteFile(csvFilename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("error reading CSV file: %v", err),
		})
	}

	// Job description
	jobDescFilename, jobDescPath, err := h.storageService.SaveFile(jobDescFile, "jobdesc", []string{".pdf", ".docx", ".txt"})
	if err != nil {
		h.storageService.DeleteFile(csvFilename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save job description: %v", err),
		})
	}

	jobDescType := services.DetectFileType(jobDescFile.Filename)
	jobDescText, err := h.textExtractor.ExtractText(jobDescPath, jobDescType)
	if err != nil {
		h.storageService.DeleteFile(csvFilename)
		h.storageService.DeleteFile(jobDescFilename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("error reading job description: %v", err),
		})
	}

	company, role := parseCompanyRole(jobDescFile.Filename)

	studentDoc := &models.Document{
		ID:               uuid.New(),
		Filename:         csvFilename,
		OriginalFileName: csvFile.Filename,
		FileType:         "csv",
		DocumentType:     models.DocTypeStudentData,
		FilePath:         csvPath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := h.docRepo.Create(studentDoc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save student document record: %v", err),
		})
	}

	jobDescDoc := &models.Document{
		ID:               uuid.New(),
		Filename:         jobDescFilename,
		OriginalFileName: jobDescFile.Filename,
		FileType:         jobDescType,
		DocumentType:     models.DocTypeJobDescription,
		FilePath:         jobDescPath,
		Company:          company,
		Role:             role,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := h.docRepo.Create(jobDescDoc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save job description record: %v", err),
		})
	}

	// Index both documents. Embedding failures inside are non-fatal: chunks
	// stay queryable from the relational side.
	ctx := c.Context()
	if err := h.indexer.IngestStudentData(ctx, studentDoc, records); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to ingest student data: %v", err),
		})
	}
	if _, err := h.indexer.IngestJobDescription(ctx, jobDescDoc, jobDescText); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to ingest job description: %v", err),
		})
	}

	job := &models.ProcessingJob{
		ID:                       uuid.New(),
		Status:                   models.JobStatusCreated,
		TotalStudents:            len(records),
		JobDescriptionLength:     len(jobDescText),
		StudentDocumentID:        studentDoc.ID,
		JobDescriptionDocumentID: jobDescDoc.ID,
		CreatedAt:                time.Now(),
	}
	if err := h.jobRepo.Create(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create processing job",
		})
	}

	h.worker.EnqueueJob(job.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.UploadResponse{
		JobID:   job.ID.String(),
		Status:  string(job.Status),
		Message: "Files uploaded successfully and processing started",
	})
}

// parseCompanyRole reads company and role from a job-description filename of
// the form Company_Role.ext.
func parseCompanyRole(filename string) (string, string) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	parts := strings.Split(base, "_")

	company := "Unknown"
	if len(parts) > 0 && parts[0] != "" {
		company = parts[0]
	}

	role := "Unknown"
	if len(parts) > 1 && parts[1] != "" {
		role = parts[1]
	}

	return company, role
}
