package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"skillalign/resume-matcher/internal/models"
)

// VectorStoreService maintains the resume index: every stored resume is
// chunked, embedded and upserted so HR can search candidates with free-text
// queries. Indexing is best-effort and never blocks an upload.
type VectorStoreService interface {
	InitCollection() error
	IndexResume(ctx context.Context, jobID, resumeID uuid.UUID, fileName, text string) error
	SearchResumes(ctx context.Context, jobID uuid.UUID, queryEmbedding []float32, limit int) ([]models.ResumeSearchHit, error)
	DeleteResume(ctx context.Context, resumeID uuid.UUID) error
}

type vectorStoreService struct {
	client         *qdrant.Client
	embedder       Embedder
	chunker        TextChunker
	collectionName string
	vectorSize     uint64
	chunkSize      int
}

func NewVectorStoreService(urlStr, apiKey, collectionName string, embedder Embedder) (VectorStoreService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one.
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &vectorStoreService{
		client:         client,
		embedder:       embedder,
		chunker:        NewTextChunker(),
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 output size
		chunkSize:      1000,
	}, nil
}

// InitCollection implements VectorStoreService.
func (v *vectorStoreService) InitCollection() error {
	ctx := context.Background()

	exists, err := v.client.CollectionExists(ctx, v.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil
	}

	err = v.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: v.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     v.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", v.collectionName)
	return nil
}

// IndexResume implements VectorStoreService. Each chunk becomes one point;
// a chunk whose embedding fails is skipped, not fatal.
func (v *vectorStoreService) IndexResume(ctx context.Context, jobID, resumeID uuid.UUID, fileName, text string) error {
	chunks := v.chunker.ChunkText(text, v.chunkSize)
	if len(chunks) == 0 {
		return fmt.Errorf("no chunks produced for resume %s", resumeID)
	}

	var points []*qdrant.PointStruct
	for i, chunk := range chunks {
		embedding, err := v.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			log.Printf("⚠️  Failed to embed chunk %d of resume %s: %v\n", i, resumeID, err)
			continue
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.New().String()),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"job_id":    jobID.String(),
				"resume_id": resumeID.String(),
				"file_name": fileName,
				"text":      chunk,
			}),
		})
	}

	if len(points) == 0 {
		return fmt.Errorf("no chunks could be embedded for resume %s", resumeID)
	}

	_, err := v.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: v.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert resume points: %w", err)
	}

	return nil
}

// SearchResumes implements VectorStoreService, restricted to one job's
// resumes.
func (v *vectorStoreService) SearchResumes(ctx context.Context, jobID uuid.UUID, queryEmbedding []float32, limit int) ([]models.ResumeSearchHit, error) {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("job_id", jobID.String()),
		},
	}

	searchResult, err := v.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: v.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var hits []models.ResumeSearchHit
	for _, point := range searchResult {
		hit := models.ResumeSearchHit{
			Score: point.Score,
		}

		payload := point.Payload
		if resumeID, ok := payload["resume_id"]; ok {
			if val, ok := resumeID.GetKind().(*qdrant.Value_StringValue); ok {
				hit.ResumeID = val.StringValue
			}
		}
		if fileName, ok := payload["file_name"]; ok {
			if val, ok := fileName.GetKind().(*qdrant.Value_StringValue); ok {
				hit.FileName = val.StringValue
			}
		}
		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				hit.Snippet = val.StringValue
			}
		}

		hits = append(hits, hit)
	}

	return hits, nil
}

// DeleteResume implements VectorStoreService.
func (v *vectorStoreService) DeleteResume(ctx context.Context, resumeID uuid.UUID) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("resume_id", resumeID.String()),
		},
	}

	_, err := v.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: v.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to delete resume points: %w", err)
	}

	return nil
}
