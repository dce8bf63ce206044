package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHF(similarityURL, chatURL string) HuggingFaceService {
	return NewHuggingFaceService("test-token", similarityURL, chatURL, "test-model", 5*time.Second)
}

func TestSentenceSimilarity(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req similarityRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "jd text", req.Inputs.SourceSentence)
		require.Len(t, req.Inputs.Sentences, 1)

		w.Write([]byte("[0.83]"))
	}))
	defer ts.Close()

	hf := newTestHF(ts.URL, ts.URL)
	scores, err := hf.SentenceSimilarity(context.Background(), "jd text", []string{"resume text"})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.InDelta(t, 0.83, scores[0], 1e-9)
}

func TestSentenceSimilarity_NonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("model loading"))
	}))
	defer ts.Close()

	hf := newTestHF(ts.URL, ts.URL)
	_, err := hf.SentenceSimilarity(context.Background(), "jd", []string{"resume"})

	var remoteErr *RemoteServiceError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusServiceUnavailable, remoteErr.StatusCode)
	assert.Contains(t, remoteErr.Body, "model loading")
}

func TestSentenceSimilarity_ScoreCountMismatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("[0.5, 0.6]"))
	}))
	defer ts.Close()

	hf := newTestHF(ts.URL, ts.URL)
	_, err := hf.SentenceSimilarity(context.Background(), "jd", []string{"resume"})
	assert.Error(t, err)
}

func TestChatCompletion(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"analysis text"}}]}`))
	}))
	defer ts.Close()

	hf := newTestHF(ts.URL, ts.URL)
	content, err := hf.ChatCompletion(context.Background(), "prompt", 0.3)
	require.NoError(t, err)
	assert.Equal(t, "analysis text", content)
}

func TestChatCompletion_NoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	hf := newTestHF(ts.URL, ts.URL)
	_, err := hf.ChatCompletion(context.Background(), "prompt", 0.3)
	assert.Error(t, err)
}

func TestRemoteSimilarityStrategy(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("[0.42]"))
	}))
	defer ts.Close()

	s := NewRemoteSimilarityStrategy(newTestHF(ts.URL, ts.URL))
	score, err := s.Score(context.Background(), "resume", "jd")
	require.NoError(t, err)
	assert.InDelta(t, 0.42, score, 1e-9)
}

func TestRemoteSimilarityStrategy_BlankInputSkipsCall(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("[0.9]"))
	}))
	defer ts.Close()

	s := NewRemoteSimilarityStrategy(newTestHF(ts.URL, ts.URL))
	score, err := s.Score(context.Background(), "resume text", "   ")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}
