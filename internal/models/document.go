package models

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID               uuid.UUID `json:"id"`
	Filename         string    `json:"filename"`
	OriginalFileName string    `json:"original_filename"`
	FilePath         string    `json:"file_path"`
	CreatedAt        time.Time `json:"created_at"`
}
