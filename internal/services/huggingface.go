package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RemoteServiceError reports a non-success status from the remote inference
// endpoint. Callers treat it as recoverable: the item degrades rather than
// the batch failing.
type RemoteServiceError struct {
	StatusCode int
	Body       string
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("remote service returned status %d: %s", e.StatusCode, e.Body)
}

// HuggingFaceService talks to the HF inference router: the
// sentence-similarity pipeline and the OpenAI-shaped chat completions
// endpoint. Single attempt per call, bounded by the client timeout.
type HuggingFaceService interface {
	SentenceSimilarity(ctx context.Context, sourceSentence string, sentences []string) ([]float64, error)
	ChatCompletion(ctx context.Context, prompt string, temperature float64) (string, error)
}

type huggingFaceService struct {
	client        *http.Client
	token         string
	similarityURL string
	chatURL       string
	chatModel     string
}

func NewHuggingFaceService(token, similarityURL, chatURL, chatModel string, timeout time.Duration) HuggingFaceService {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &huggingFaceService{
		client:        &http.Client{Timeout: timeout},
		token:         token,
		similarityURL: similarityURL,
		chatURL:       chatURL,
		chatModel:     chatModel,
	}
}

type similarityRequest struct {
	Inputs similarityInputs `json:"inputs"`
}

type similarityInputs struct {
	SourceSentence string   `json:"source_sentence"`
	Sentences      []string `json:"sentences"`
}

// SentenceSimilarity implements HuggingFaceService. The endpoint returns one
// float per candidate sentence, each in [0,1].
func (h *huggingFaceService) SentenceSimilarity(ctx context.Context, sourceSentence string, sentences []string) ([]float64, error) {
	body := similarityRequest{
		Inputs: similarityInputs{
			SourceSentence: sourceSentence,
			Sentences:      sentences,
		},
	}

	respBody, err := h.post(ctx, h.similarityURL, body)
	if err != nil {
		return nil, err
	}

	var scores []float64
	if err := json.Unmarshal(respBody, &scores); err != nil {
		return nil, fmt.Errorf("failed to decode similarity response: %w", err)
	}

	if len(scores) != len(sentences) {
		return nil, fmt.Errorf("similarity response has %d scores for %d sentences", len(scores), len(sentences))
	}

	return scores, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ChatCompletion implements HuggingFaceService and returns the raw content
// of the first choice.
func (h *huggingFaceService) ChatCompletion(ctx context.Context, prompt string, temperature float64) (string, error) {
	body := chatRequest{
		Model: h.chatModel,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
	}

	respBody, err := h.post(ctx, h.chatURL, body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat response has no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

func (h *huggingFaceService) post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RemoteServiceError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	return respBody, nil
}

// --- remote similarity strategy ---

type remoteSimilarityStrategy struct {
	hf HuggingFaceService
}

// NewRemoteSimilarityStrategy delegates scoring to the HF sentence-similarity
// endpoint, using the JD as the source sentence.
func NewRemoteSimilarityStrategy(hf HuggingFaceService) SimilarityStrategy {
	return &remoteSimilarityStrategy{hf: hf}
}

func (s *remoteSimilarityStrategy) Name() string { return "remote" }

func (s *remoteSimilarityStrategy) Score(ctx context.Context, resumeText, jdText string) (float64, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jdText) == "" {
		return 0.0, nil
	}

	scores, err := s.hf.SentenceSimilarity(ctx, jdText, []string{resumeText})
	if err != nil {
		return 0, err
	}

	return scores[0], nil
}
