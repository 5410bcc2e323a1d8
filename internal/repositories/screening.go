package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-screener/internal/models"
)

type ScreeningRepository interface {
	Create(screening *models.Screening) error
	FindByID(id uuid.UUID) (*models.Screening, error)
	UpdateItemStatus(screeningID, documentID uuid.UUID, status models.ScreeningStatus) error
	UpdateItemResult(screeningID, documentID uuid.UUID, result *models.MatchResult) error
	UpdateItemError(screeningID, documentID uuid.UUID, kind, message string) error
}

// screeningRepository is a mutex-guarded in-memory store. FindByID returns
// deep copies so callers never observe concurrent item updates.
type screeningRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*models.Screening
}

func NewScreeningRepository() ScreeningRepository {
	return &screeningRepository{
		byID: make(map[uuid.UUID]*models.Screening),
	}
}

func (r *screeningRepository) Create(screening *models.Screening) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[screening.ID]; exists {
		return fmt.Errorf("screening %s already exists", screening.ID)
	}
	// Items can already be terminal at intake (unsupported or oversize
	// files), so the batch status is derived here too, not only on update.
	screening.Status = batchStatus(screening.Items)
	stored := *screening
	stored.Items = append([]models.ScreeningItem(nil), screening.Items...)
	r.byID[screening.ID] = &stored
	return nil
}

func (r *screeningRepository) FindByID(id uuid.UUID) (*models.Screening, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *stored
	copied.Items = append([]models.ScreeningItem(nil), stored.Items...)
	return &copied, nil
}

func (r *screeningRepository) UpdateItemStatus(screeningID, documentID uuid.UUID, status models.ScreeningStatus) error {
	return r.updateItem(screeningID, documentID, func(item *models.ScreeningItem) {
		item.Status = status
	})
}

func (r *screeningRepository) UpdateItemResult(screeningID, documentID uuid.UUID, result *models.MatchResult) error {
	return r.updateItem(screeningID, documentID, func(item *models.ScreeningItem) {
		item.Status = models.StatusCompleted
		item.Result = result
	})
}

func (r *screeningRepository) UpdateItemError(screeningID, documentID uuid.UUID, kind, message string) error {
	return r.updateItem(screeningID, documentID, func(item *models.ScreeningItem) {
		item.Status = models.StatusFailed
		item.ErrorKind = kind
		item.ErrorMessage = message
	})
}

func (r *screeningRepository) updateItem(screeningID, documentID uuid.UUID, update func(*models.ScreeningItem)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	screening, ok := r.byID[screeningID]
	if !ok {
		return ErrNotFound
	}

	found := false
	for i := range screening.Items {
		if screening.Items[i].DocumentID == documentID {
			update(&screening.Items[i])
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("document %s not part of screening %s: %w", documentID, screeningID, ErrNotFound)
	}

	screening.Status = batchStatus(screening.Items)
	screening.UpdatedAt = time.Now()
	return nil
}

// batchStatus derives the batch status from its items: queued while no item
// has left the queue, completed once every item is terminal regardless of
// individual failures, processing in between.
func batchStatus(items []models.ScreeningItem) models.ScreeningStatus {
	allTerminal := len(items) > 0
	allQueued := true
	for _, item := range items {
		switch item.Status {
		case models.StatusCompleted, models.StatusFailed:
			allQueued = false
		case models.StatusProcessing:
			allQueued = false
			allTerminal = false
		default:
			allTerminal = false
		}
	}
	if allTerminal {
		return models.StatusCompleted
	}
	if allQueued {
		return models.StatusQueued
	}
	return models.StatusProcessing
}
