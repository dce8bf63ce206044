package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"skillalign/resume-matcher/internal/models"
	"skillalign/resume-matcher/internal/repositories"
)

// CritiqueGenerator produces free-form text from a prompt. GeminiService
// satisfies it directly; the HF chat endpoint is adapted below.
type CritiqueGenerator interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}

// NewHFCritiqueGenerator adapts the HF chat-completions endpoint to the
// CritiqueGenerator interface for deployments without a Gemini key.
func NewHFCritiqueGenerator(hf HuggingFaceService) CritiqueGenerator {
	return &hfCritiqueGenerator{hf: hf}
}

type hfCritiqueGenerator struct {
	hf HuggingFaceService
}

func (g *hfCritiqueGenerator) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	return g.hf.ChatCompletion(ctx, prompt, float64(temperature))
}

// AnalyzerService processes one queued analysis: score the resume against
// the JD with the active strategy, then ask the LLM for a structured
// critique.
type AnalyzerService interface {
	AnalyzeResume(ctx context.Context, analysisID uuid.UUID) error
}

type analyzerService struct {
	analysisRepo  repositories.AnalysisRepository
	matcher       MatcherService
	critiqueModel CritiqueGenerator
	promptBuilder *PromptBuilder
}

func NewAnalyzerService(
	analysisRepo repositories.AnalysisRepository,
	matcher MatcherService,
	critiqueModel CritiqueGenerator,
) AnalyzerService {
	return &analyzerService{
		analysisRepo:  analysisRepo,
		matcher:       matcher,
		critiqueModel: critiqueModel,
		promptBuilder: NewPromptBuilder(),
	}
}

type critiqueResult struct {
	MatchedSkills string `json:"matched_skills"`
	MissingSkills string `json:"missing_skills"`
	Suggestions   string `json:"suggestions"`
	Summary       string `json:"summary"`
}

// AnalyzeResume implements AnalyzerService.
func (a *analyzerService) AnalyzeResume(ctx context.Context, analysisID uuid.UUID) error {
	if err := a.analysisRepo.UpdateStatus(analysisID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting analysis %s\n", analysisID)

	analysis, err := a.analysisRepo.FindByID(analysisID)
	if err != nil {
		a.analysisRepo.UpdateError(analysisID, err.Error())
		return fmt.Errorf("failed to get analysis: %w", err)
	}

	// Step 1: score with the active strategy.
	match, err := a.matcher.ScoreText(ctx, analysis.ResumeText, analysis.JDText)
	if err != nil {
		a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("Failed to score resume: %v", err))
		return fmt.Errorf("failed to score resume: %w", err)
	}

	// Step 2: qualitative critique via the LLM. A remote failure degrades to
	// a placeholder critique instead of failing the whole analysis.
	critique, err := a.generateCritique(ctx, analysis.ResumeText, analysis.JDText)
	if err != nil {
		var remoteErr *RemoteServiceError
		if errors.As(err, &remoteErr) {
			log.Printf("⚠️  Critique degraded for %s: %v\n", analysisID, remoteErr)
			critique = &critiqueResult{
				Summary: "Qualitative analysis is temporarily unavailable. The match score above was computed normally.",
			}
		} else {
			a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("Failed to generate critique: %v", err))
			return fmt.Errorf("failed to generate critique: %w", err)
		}
	}

	log.Printf("💾 Saving analysis results for %s\n", analysisID)
	updateData := &repositories.AnalysisUpdateData{
		MatchScore:    &match.NormalizedScore,
		Tier:          &match.Tier,
		MatchedSkills: &critique.MatchedSkills,
		MissingSkills: &critique.MissingSkills,
		Suggestions:   &critique.Suggestions,
		Summary:       &critique.Summary,
	}

	if err := a.analysisRepo.UpdateResult(analysisID, updateData); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	log.Printf("✅ Analysis completed for %s\n", analysisID)
	return nil
}

func (a *analyzerService) generateCritique(ctx context.Context, resumeText, jdText string) (*critiqueResult, error) {
	prompt := a.promptBuilder.BuildCritiquePrompt(resumeText, jdText)

	response, err := a.critiqueModel.GenerateText(ctx, prompt, 0.3)
	if err != nil {
		return nil, err
	}

	// The model may wrap the JSON in prose or markdown fences.
	var result critiqueResult
	if err := json.Unmarshal([]byte(ExtractJSON(response)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse critique response: %w\nResponse: %s", err, response)
	}

	return &result, nil
}
