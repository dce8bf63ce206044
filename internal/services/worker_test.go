package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"skillalign/resume-matcher/internal/models"
)

func TestEnqueueJob_FullQueueDoesNotBlock(t *testing.T) {
	// No workers are started, so nothing drains the queue (cap 100).
	// Enqueueing well past capacity must still return promptly; overflow
	// rows stay queued for the pending-jobs poller.
	w := NewWorker(newFakeAnalysisRepo(), nil, 0, time.Second)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 150; i++ {
			w.EnqueueJob(uuid.New())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}
}

func TestEnqueueJob_StoppedWorkerDoesNotBlock(t *testing.T) {
	w := NewWorker(newFakeAnalysisRepo(), nil, 0, time.Second)
	w.Start(context.Background())
	w.Stop()

	done := make(chan struct{})
	go func() {
		w.EnqueueJob(uuid.New())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue blocked after the worker stopped")
	}
}

func TestWorker_ProcessesEnqueuedJob(t *testing.T) {
	repo := newFakeAnalysisRepo()
	analyzer := NewAnalyzerService(
		repo,
		newTestMatcher(NewTokenOverlapStrategy()),
		&fakeCritiqueModel{response: `{"summary":"fine"}`},
	)

	analysis := queuedAnalysis()
	require.NoError(t, repo.Create(analysis))

	w := NewWorker(repo, analyzer, 1, time.Hour)
	w.Start(context.Background())
	defer w.Stop()

	w.EnqueueJob(analysis.ID)

	require.Eventually(t, func() bool {
		a, err := repo.FindByID(analysis.ID)
		return err == nil && a.Status == models.StatusCompleted
	}, 2*time.Second, 10*time.Millisecond)
}
