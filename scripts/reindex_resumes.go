package main

import (
	"context"
	"log"

	"skillalign/resume-matcher/internal/config"
	"skillalign/resume-matcher/internal/repositories"
	"skillalign/resume-matcher/internal/services"
)

// Rebuilds the Qdrant resume index from the resumes stored in the database.
// Run after changing the embedding model or recreating the collection.
func main() {
	log.Println("🚀 Starting resume reindexing...")

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	jobRepo := repositories.NewJobRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	vectorStore, err := services.NewVectorStoreService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		geminiService,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	jobs, err := jobRepo.List()
	if err != nil {
		log.Fatalf("❌ Failed to list jobs: %v", err)
	}

	ctx := context.Background()
	indexed := 0
	failed := 0

	for _, job := range jobs {
		resumes, err := resumeRepo.FindByJobID(job.ID)
		if err != nil {
			log.Printf("⚠️  Failed to load resumes for job %s: %v\n", job.ID, err)
			continue
		}

		for _, resume := range resumes {
			if err := vectorStore.DeleteResume(ctx, resume.ID); err != nil {
				log.Printf("⚠️  Failed to clear old points for %s: %v\n", resume.ID, err)
			}

			if err := vectorStore.IndexResume(ctx, job.ID, resume.ID, resume.FileName, resume.ResumeText); err != nil {
				log.Printf("❌ Failed to index %s (%s): %v\n", resume.FileName, resume.ID, err)
				failed++
				continue
			}

			indexed++
		}
	}

	log.Printf("✅ Reindexing complete: %d indexed, %d failed\n", indexed, failed)
}
