package repositories

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-screener/internal/models"
)

func newScreening(itemCount int) *models.Screening {
	screening := &models.Screening{
		ID:        uuid.New(),
		Status:    models.StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	for i := 0; i < itemCount; i++ {
		screening.Items = append(screening.Items, models.ScreeningItem{
			DocumentID: uuid.New(),
			Filename:   "resume.pdf",
			Status:     models.StatusQueued,
		})
	}
	return screening
}

func TestScreeningCreateAndFind(t *testing.T) {
	repo := NewScreeningRepository()
	screening := newScreening(2)

	require.NoError(t, repo.Create(screening))

	found, err := repo.FindByID(screening.ID)
	require.NoError(t, err)
	assert.Equal(t, screening.ID, found.ID)
	assert.Len(t, found.Items, 2)

	// Duplicate IDs are rejected
	assert.Error(t, repo.Create(screening))
}

func TestScreeningFindReturnsCopy(t *testing.T) {
	repo := NewScreeningRepository()
	screening := newScreening(1)
	require.NoError(t, repo.Create(screening))

	found, err := repo.FindByID(screening.ID)
	require.NoError(t, err)
	found.Items[0].Status = models.StatusFailed
	found.Status = models.StatusFailed

	again, err := repo.FindByID(screening.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusQueued, again.Items[0].Status)
	assert.Equal(t, models.StatusQueued, again.Status)
}

func TestScreeningCreateDerivesStatus(t *testing.T) {
	repo := NewScreeningRepository()

	// Every item already terminal at intake: the batch is completed from
	// the start, with no item update to recompute it later.
	screening := newScreening(2)
	for i := range screening.Items {
		screening.Items[i].Status = models.StatusFailed
		screening.Items[i].ErrorKind = "unsupported_format"
	}
	require.NoError(t, repo.Create(screening))
	assert.Equal(t, models.StatusCompleted, screening.Status)

	found, err := repo.FindByID(screening.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, found.Status)

	// A mix of queued and terminal items is in-flight work
	mixed := newScreening(2)
	mixed.Items[1].Status = models.StatusFailed
	require.NoError(t, repo.Create(mixed))
	assert.Equal(t, models.StatusProcessing, mixed.Status)
}

func TestScreeningFindUnknown(t *testing.T) {
	repo := NewScreeningRepository()

	_, err := repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScreeningItemUpdates(t *testing.T) {
	repo := NewScreeningRepository()
	screening := newScreening(2)
	require.NoError(t, repo.Create(screening))

	first := screening.Items[0].DocumentID
	second := screening.Items[1].DocumentID

	require.NoError(t, repo.UpdateItemStatus(screening.ID, first, models.StatusProcessing))

	found, err := repo.FindByID(screening.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, found.Items[0].Status)
	assert.Equal(t, models.StatusProcessing, found.Status)

	result := &models.MatchResult{
		CandidateName: "Jane Smith",
		Score:         90,
		Verdict:       models.VerdictStrong,
		Rationale:     "Strong overlap with the requested stack.",
	}
	require.NoError(t, repo.UpdateItemResult(screening.ID, first, result))
	require.NoError(t, repo.UpdateItemError(screening.ID, second, "corrupt_document", "pdf parse failed"))

	found, err = repo.FindByID(screening.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, found.Items[0].Status)
	require.NotNil(t, found.Items[0].Result)
	assert.Equal(t, "Jane Smith", found.Items[0].Result.CandidateName)

	assert.Equal(t, models.StatusFailed, found.Items[1].Status)
	assert.Equal(t, "corrupt_document", found.Items[1].ErrorKind)
	assert.Equal(t, "pdf parse failed", found.Items[1].ErrorMessage)

	// Every item terminal, even with one failure: batch is completed
	assert.Equal(t, models.StatusCompleted, found.Status)
}

func TestScreeningUpdateUnknownTargets(t *testing.T) {
	repo := NewScreeningRepository()
	screening := newScreening(1)
	require.NoError(t, repo.Create(screening))

	err := repo.UpdateItemStatus(uuid.New(), screening.Items[0].DocumentID, models.StatusProcessing)
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.UpdateItemStatus(screening.ID, uuid.New(), models.StatusProcessing)
	assert.ErrorIs(t, err, ErrNotFound)
}
