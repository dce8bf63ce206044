package handlers

import (
	"errors"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"skillalign/resume-matcher/internal/models"
	"skillalign/resume-matcher/internal/repositories"
	"skillalign/resume-matcher/internal/services"
)

type ResumeHandler struct {
	jobRepo     repositories.JobRepository
	resumeRepo  repositories.ResumeRepository
	extractor   services.TextExtractor
	matcher     services.MatcherService
	storage     services.StorageService
	vectorStore services.VectorStoreService
	embedder    services.Embedder
	maxFileSize int64
}

func NewResumeHandler(
	jobRepo repositories.JobRepository,
	resumeRepo repositories.ResumeRepository,
	extractor services.TextExtractor,
	matcher services.MatcherService,
	storage services.StorageService,
	vectorStore services.VectorStoreService,
	embedder services.Embedder,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		jobRepo:     jobRepo,
		resumeRepo:  resumeRepo,
		extractor:   extractor,
		matcher:     matcher,
		storage:     storage,
		vectorStore: vectorStore,
		embedder:    embedder,
		maxFileSize: maxFileSize,
	}
}

// HandleUploadResumes handles POST /jobs/:id/resumes. Every uploaded file is
// extracted, scored against the job description and persisted. A file that
// fails is skipped and the rest of the batch continues; the request fails
// only when no file succeeds.
func (h *ResumeHandler) HandleUploadResumes(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job Description not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to look up job description",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files uploaded. Attach one or more resumes as 'files'.",
		})
	}

	var results []models.MatchResult

	for _, fileHeader := range files {
		if fileHeader.Size > h.maxFileSize {
			log.Printf("⚠️  Skipping %s: file too large (%d bytes)\n", fileHeader.Filename, fileHeader.Size)
			continue
		}

		src, err := fileHeader.Open()
		if err != nil {
			log.Printf("⚠️  Skipping %s: %v\n", fileHeader.Filename, err)
			continue
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			log.Printf("⚠️  Skipping %s: %v\n", fileHeader.Filename, err)
			continue
		}

		text := h.extractor.Extract(fileHeader.Filename, data)
		if text == "" {
			log.Printf("⚠️  Skipping %s: no text extracted\n", fileHeader.Filename)
			continue
		}

		match, err := h.matcher.ScoreText(c.UserContext(), text, job.Description)
		if err != nil {
			log.Printf("⚠️  Skipping %s: %v\n", fileHeader.Filename, err)
			continue
		}

		// The raw upload is kept on disk; losing it is not worth failing the
		// batch over.
		_, filePath, err := h.storage.SaveFile(fileHeader.Filename, data)
		if err != nil {
			log.Printf("⚠️  Could not store %s: %v\n", fileHeader.Filename, err)
		}

		resume := &models.Resume{
			ID:         uuid.New(),
			JobID:      jobID,
			FileName:   fileHeader.Filename,
			FilePath:   filePath,
			ResumeText: text,
			RawScore:   match.RawScore,
			MatchScore: match.NormalizedScore,
			Tier:       match.Tier,
			Color:      match.Color,
			CreatedAt:  time.Now(),
		}

		if err := h.resumeRepo.Create(resume); err != nil {
			log.Printf("⚠️  Skipping %s: %v\n", fileHeader.Filename, err)
			continue
		}

		// Best-effort: the resume is searchable once indexing succeeds, but
		// an index outage never fails an upload.
		if h.vectorStore != nil {
			if err := h.vectorStore.IndexResume(c.UserContext(), jobID, resume.ID, resume.FileName, text); err != nil {
				log.Printf("⚠️  Failed to index %s: %v\n", fileHeader.Filename, err)
			}
		}

		match.ID = resume.ID.String()
		match.FileName = resume.FileName
		results = append(results, match)
	}

	if len(results) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resumes were uploaded successfully",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.Envelope{
		Status:  "success",
		Message: "Resumes uploaded and scored",
		Data:    results,
	})
}

// HandleShortlist handles GET /jobs/:id/shortlist using the scores stored at
// upload time.
func (h *ResumeHandler) HandleShortlist(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job Description not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to look up job description",
		})
	}

	resumes, err := h.resumeRepo.FindByJobID(jobID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load resumes",
		})
	}

	results := make([]models.MatchResult, 0, len(resumes))
	for _, resume := range resumes {
		results = append(results, models.MatchResult{
			ID:              resume.ID.String(),
			FileName:        resume.FileName,
			RawScore:        resume.RawScore,
			NormalizedScore: resume.MatchScore,
			Tier:            resume.Tier,
			Color:           resume.Color,
		})
	}

	shortlist := h.matcher.Rank(results)

	return c.JSON(models.Envelope{
		Status: "success",
		Data:   shortlist,
	})
}

// HandleSearchResumes handles GET /jobs/:id/search?q=...&limit=N over the
// vector index.
func (h *ResumeHandler) HandleSearchResumes(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter 'q' is required",
		})
	}

	limit := 5
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}

	embedding, err := h.embedder.GenerateEmbedding(c.UserContext(), query)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to embed query",
		})
	}

	hits, err := h.vectorStore.SearchResumes(c.UserContext(), jobID, embedding, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search resumes",
		})
	}

	return c.JSON(models.Envelope{
		Status: "success",
		Data:   hits,
	})
}
