package models

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	ID            uuid.UUID      `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Subject       string         `json:"subject"`
	Course        string         `json:"course"`
	Semester      int            `json:"semester"`
	FilePath      string         `json:"file_url"`
	Downloads     int            `json:"downloads"`
	AverageRating float64        `json:"average_rating"`
	Reviews       []Review       `json:"reviews,omitempty"`
	UploadedByID  uuid.UUID      `json:"uploaded_by_id"`
	UploadedBy    *PublicProfile `json:"uploaded_by,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

type Review struct {
	ID        uuid.UUID      `json:"id"`
	NoteID    uuid.UUID      `json:"note_id"`
	UserID    uuid.UUID      `json:"user_id"`
	User      *PublicProfile `json:"user,omitempty"`
	Rating    int            `json:"rating"`
	Comment   string         `json:"comment"`
	CreatedAt time.Time      `json:"created_at"`
}

type NoteFilter struct {
	Search   string
	Subject  string
	Course   string
	Semester *int
}
