package models

import (
	"time"

	"github.com/google/uuid"
)

type QuestionPaper struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Subject      string         `json:"subject"`
	Course       string         `json:"course"`
	Semester     int            `json:"semester"`
	FilePath     string         `json:"file_url"`
	UploadedByID uuid.UUID      `json:"uploaded_by_id"`
	UploadedBy   *PublicProfile `json:"uploaded_by,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

type QuestionPaperFilter struct {
	Search   string
	Subject  string
	Course   string
	Semester *int
}
