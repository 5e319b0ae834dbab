package models

type UploadResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type JobStatusResponse struct {
	JobID             string        `json:"job_id"`
	Status            string        `json:"status"`
	TotalStudents     int           `json:"total_students"`
	ProcessedStudents int           `json:"processed_students"`
	Results           []MatchResult `json:"results,omitempty"`
	ErrorMessage      *string       `json:"error_message,omitempty"`
}

type GenerateDocumentRequest struct {
	JobID        string `json:"job_id" validate:"required,uuid"`
	StudentEmail string `json:"student_email" validate:"required,email"`
	Company      string `json:"company" validate:"required"`
	Role         string `json:"role" validate:"required"`
}

type GenerateDocumentResponse struct {
	ID           string `json:"id"`
	StudentEmail string `json:"student_email"`
	Company      string `json:"company"`
	Role         string `json:"role"`
	Content      string `json:"content"`
}
