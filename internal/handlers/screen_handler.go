package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"resume-screener/internal/models"
	"resume-screener/internal/repositories"
	"resume-screener/internal/services"
)

type ScreenHandler struct {
	screeningRepo  repositories.ScreeningRepository
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	worker         services.Worker
	maxFileSize    int64
	logger         *zap.Logger
}

func NewScreenHandler(
	screeningRepo repositories.ScreeningRepository,
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	worker services.Worker,
	maxFileSize int64,
	logger *zap.Logger,
) *ScreenHandler {
	return &ScreenHandler{
		screeningRepo:  screeningRepo,
		docRepo:        docRepo,
		storageService: storageService,
		worker:         worker,
		maxFileSize:    maxFileSize,
		logger:         logger,
	}
}

// HandleScreen handles POST /screen: one or more resumes plus the screening
// requirement. Each file is an independent unit of work; a file that cannot
// be accepted becomes a failed item without affecting the others.
func (h *ScreenHandler) HandleScreen(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File["resumes"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resumes uploaded. Please upload at least one PDF or DOCX file as 'resumes'.",
		})
	}

	requirement := models.Requirement{
		TechnicalSkills: c.FormValue("technical_skills"),
		SoftSkills:      c.FormValue("soft_skills"),
	}

	screening := &models.Screening{
		ID:          uuid.New(),
		Requirement: requirement,
		Status:      models.StatusQueued,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	var jobs []services.Job
	var docInfos []models.DocumentInfo

	for _, file := range files {
		item := models.ScreeningItem{
			DocumentID: uuid.New(),
			Filename:   file.Filename,
			Status:     models.StatusQueued,
		}

		if file.Size > h.maxFileSize {
			item.Status = models.StatusFailed
			item.ErrorKind = "file_too_large"
			item.ErrorMessage = fmt.Sprintf("file too large, max size: %d bytes", h.maxFileSize)
			screening.Items = append(screening.Items, item)
			continue
		}

		filename, filePath, err := h.storageService.SaveFile(file)
		if err != nil {
			item.Status = models.StatusFailed
			item.ErrorKind = services.ErrorKind(err)
			item.ErrorMessage = err.Error()
			screening.Items = append(screening.Items, item)
			continue
		}

		doc := models.Document{
			ID:               item.DocumentID,
			Filename:         filename,
			OriginalFileName: file.Filename,
			FilePath:         filePath,
			CreatedAt:        time.Now(),
		}
		if err := h.docRepo.Create(&doc); err != nil {
			if delErr := h.storageService.DeleteFile(filename); delErr != nil {
				h.logger.Warn("failed to clean up stored file",
					zap.String("filename", filename),
					zap.Error(delErr),
				)
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save document record: %v", err),
			})
		}

		screening.Items = append(screening.Items, item)
		jobs = append(jobs, services.Job{ScreeningID: screening.ID, DocumentID: doc.ID})
		docInfos = append(docInfos, models.DocumentInfo{
			ID:           doc.ID.String(),
			Filename:     doc.Filename,
			OriginalName: doc.OriginalFileName,
			Status:       string(item.Status),
		})
	}

	if err := h.screeningRepo.Create(screening); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create screening job",
		})
	}

	// Enqueue after the screening is visible to workers
	for _, job := range jobs {
		h.worker.EnqueueJob(job)
	}

	return c.Status(fiber.StatusAccepted).JSON(models.ScreenResponse{
		ID:        screening.ID.String(),
		Status:    string(screening.Status),
		Documents: docInfos,
	})
}
