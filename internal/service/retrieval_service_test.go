package service

import (
	"context"
	"errors"
	"testing"

	"github.com/SilviaMahr/StudyVerse/internal/models"
	"github.com/SilviaMahr/StudyVerse/internal/retrieval"
	"github.com/SilviaMahr/StudyVerse/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEmbedder struct {
	err   error
	calls int
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeSearcher struct {
	rows       []models.Course
	err        error
	fetchLimit int
}

func (f *fakeSearcher) SearchSimilar(ctx context.Context, embedding []float32, filter retrieval.Condition, fetchLimit int) ([]models.Course, error) {
	f.fetchLimit = fetchLimit
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeSearcher) SearchByName(ctx context.Context, name string, limit int) ([]models.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func chunk(name, courseType string, similarity float64) models.Course {
	return models.Course{
		Metadata: models.CourseMetadata{
			Name: name,
			Type: models.CourseType(courseType),
		},
		Similarity: similarity,
	}
}

func newTestRetrieval(searcher *fakeSearcher, embedder *fakeEmbedder, cfg *config.RAGConfig) *RetrievalService {
	return NewRetrievalService(searcher, embedder, cfg, zap.NewNop())
}

func TestRetrieveDeduplicatesByIdentity(t *testing.T) {
	searcher := &fakeSearcher{rows: []models.Course{
		chunk("Statistik", "KV", 0.9),
		chunk("Statistik", "KV", 0.85),
		chunk("Statistik", "UE", 0.8),
		chunk("Datenmodellierung", "VL", 0.7),
	}}

	svc := newTestRetrieval(searcher, &fakeEmbedder{}, nil)
	results := svc.Retrieve(context.Background(), "statistik kurse", nil, 10)

	require.Len(t, results, 3)
	// First occurrence wins, so the higher-similarity chunk survives.
	assert.Equal(t, 0.9, results[0].Similarity)
	assert.Equal(t, models.CourseType("UE"), results[1].Metadata.Type)
	assert.Equal(t, "Datenmodellierung", results[2].Metadata.Name)
}

func TestRetrieveOverFetchesRawRows(t *testing.T) {
	searcher := &fakeSearcher{}
	cfg := &config.RAGConfig{OverFetch: 20}

	svc := newTestRetrieval(searcher, &fakeEmbedder{}, cfg)
	svc.Retrieve(context.Background(), "query", nil, 10)

	assert.Equal(t, 200, searcher.fetchLimit)
}

func TestRetrieveStopsAtUniqueLimit(t *testing.T) {
	searcher := &fakeSearcher{rows: []models.Course{
		chunk("A", "VL", 0.9),
		chunk("B", "VL", 0.8),
		chunk("C", "VL", 0.7),
	}}

	svc := newTestRetrieval(searcher, &fakeEmbedder{}, nil)
	results := svc.Retrieve(context.Background(), "query", nil, 2)

	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].Metadata.Name)
	assert.Equal(t, "B", results[1].Metadata.Name)
}

func TestRetrieveAllUsesFetchFloorWithoutEarlyStop(t *testing.T) {
	rows := make([]models.Course, 0, 60)
	for i := 0; i < 30; i++ {
		rows = append(rows,
			chunk(string(rune('A'+i)), "VL", 0.9),
			chunk(string(rune('A'+i)), "VL", 0.8),
		)
	}
	searcher := &fakeSearcher{rows: rows}
	cfg := &config.RAGConfig{AllFetchFloor: 5000}

	svc := newTestRetrieval(searcher, &fakeEmbedder{}, cfg)
	results := svc.RetrieveAll(context.Background(), "alles", nil)

	assert.Equal(t, 5000, searcher.fetchLimit)
	assert.Len(t, results, 30)
}

func TestRetrieveKeepsChunksWithoutIdentity(t *testing.T) {
	searcher := &fakeSearcher{rows: []models.Course{
		{Content: "Curriculum Abschnitt 1"},
		{Content: "Curriculum Abschnitt 2"},
		chunk("Statistik", "KV", 0.5),
	}}

	svc := newTestRetrieval(searcher, &fakeEmbedder{}, nil)
	results := svc.Retrieve(context.Background(), "curriculum", nil, 10)

	assert.Len(t, results, 3)
}

func TestRetrieveEmbeddingErrorReturnsEmpty(t *testing.T) {
	searcher := &fakeSearcher{rows: []models.Course{chunk("A", "VL", 0.9)}}
	embedder := &fakeEmbedder{err: errors.New("quota exceeded")}

	svc := newTestRetrieval(searcher, embedder, nil)
	results := svc.Retrieve(context.Background(), "query", nil, 10)

	assert.Nil(t, results)
}

func TestRetrieveSearchErrorReturnsEmpty(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("connection refused")}

	svc := newTestRetrieval(searcher, &fakeEmbedder{}, nil)
	results := svc.Retrieve(context.Background(), "query", nil, 10)

	assert.Nil(t, results)
}

func TestRetrieveByNameDefaultLimit(t *testing.T) {
	searcher := &fakeSearcher{rows: []models.Course{chunk("Statistik", "KV", 0)}}

	svc := newTestRetrieval(searcher, &fakeEmbedder{}, nil)
	results := svc.RetrieveByName(context.Background(), "Statistik", 0)

	require.Len(t, results, 1)
	assert.Equal(t, "Statistik", results[0].Metadata.Name)
}
