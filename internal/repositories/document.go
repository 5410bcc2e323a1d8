package repositories

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"resume-screener/internal/models"
)

var ErrNotFound = errors.New("record not found")

type DocumentRepository interface {
	Create(document *models.Document) error
	FindByID(id uuid.UUID) (*models.Document, error)
}

// documentRepository keeps documents in memory; nothing survives the
// process.
type documentRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]models.Document
}

func NewDocumentRepository() DocumentRepository {
	return &documentRepository{
		byID: make(map[uuid.UUID]models.Document),
	}
}

// Create implements DocumentRepository.
func (d *documentRepository) Create(document *models.Document) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byID[document.ID] = *document
	return nil
}

// FindByID implements DocumentRepository.
func (d *documentRepository) FindByID(id uuid.UUID) (*models.Document, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	doc, ok := d.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}
