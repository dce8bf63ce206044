package handlers

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"skillalign/resume-matcher/internal/models"
	"skillalign/resume-matcher/internal/repositories"
	"skillalign/resume-matcher/internal/services"
)

type AnalyzeHandler struct {
	analysisRepo repositories.AnalysisRepository
	extractor    services.TextExtractor
	worker       services.Worker
	maxFileSize  int64
}

func NewAnalyzeHandler(
	analysisRepo repositories.AnalysisRepository,
	extractor services.TextExtractor,
	worker services.Worker,
	maxFileSize int64,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysisRepo: analysisRepo,
		extractor:    extractor,
		worker:       worker,
		maxFileSize:  maxFileSize,
	}
}

// HandleAnalyze handles POST /analyze: one resume file plus a JD text field.
// The critique runs asynchronously; the response carries the job id to poll.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	jdText := c.FormValue("job_description")
	if jdText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	fileHeader, err := c.FormFile("resume_file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_file is required",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Resume file too large",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open uploaded file",
		})
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}

	resumeText := h.extractor.Extract(fileHeader.Filename, data)
	if resumeText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Empty resume text after extraction",
		})
	}

	analysis := &models.Analysis{
		ID:         uuid.New(),
		FileName:   fileHeader.Filename,
		ResumeText: resumeText,
		JDText:     jdText,
		Status:     models.StatusQueued,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if claims := CurrentClaims(c); claims != nil {
		analysis.RequestedByID = claims.UserID
	}

	if err := h.analysisRepo.Create(analysis); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create analysis job",
		})
	}

	h.worker.EnqueueJob(analysis.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.AnalyzeResponse{
		ID:     analysis.ID.String(),
		Status: string(models.StatusQueued),
	})
}

// HandleGetAnalysis handles GET /analyze/:id
func (h *AnalyzeHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	analysisID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	analysis, err := h.analysisRepo.FindByID(analysisID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Analysis not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to look up analysis",
		})
	}

	response := models.AnalysisResultResponse{
		ID:     analysis.ID.String(),
		Status: string(analysis.Status),
	}

	if analysis.Status == models.StatusCompleted {
		data := &models.AnalysisData{}
		if analysis.MatchScore != nil {
			data.MatchScore = *analysis.MatchScore
		}
		if analysis.Tier != nil {
			data.Tier = *analysis.Tier
		}
		if analysis.MatchedSkills != nil {
			data.MatchedSkills = *analysis.MatchedSkills
		}
		if analysis.MissingSkills != nil {
			data.MissingSkills = *analysis.MissingSkills
		}
		if analysis.Suggestions != nil {
			data.Suggestions = *analysis.Suggestions
		}
		if analysis.Summary != nil {
			data.Summary = *analysis.Summary
		}
		response.Result = data
	}

	if analysis.Status == models.StatusFailed && analysis.ErrorMessage != nil {
		response.ErrorMessage = analysis.ErrorMessage
	}

	return c.JSON(response)
}
