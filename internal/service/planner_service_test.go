package service

import (
	"context"
	"errors"
	"testing"

	"github.com/SilviaMahr/StudyVerse/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCompleted struct {
	names []string
	err   error
}

func (f *fakeCompleted) NamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return f.names, f.err
}

type fakeCurriculum struct {
	electives     []models.CurriculumCourse
	chains        map[string][]string
	err           error
	electiveCalls int
}

func (f *fakeCurriculum) Electives(ctx context.Context) ([]models.CurriculumCourse, error) {
	f.electiveCalls++
	return f.electives, f.err
}

func (f *fakeCurriculum) PrerequisiteChains(ctx context.Context) (map[string][]string, error) {
	return f.chains, f.err
}

func newTestPlanner(searcher *fakeSearcher, completed *fakeCompleted, curriculum *fakeCurriculum) *PlannerService {
	retriever := newTestRetrieval(searcher, &fakeEmbedder{}, nil)
	filter := newTestFilter()
	return NewPlannerService(retriever, filter, completed, curriculum, zap.NewNop())
}

func TestPlanEndToEndPartitioning(t *testing.T) {
	searcher := &fakeSearcher{rows: []models.Course{
		testCourse("Statistik", "KV", "SS"),
		testCourse("Datenmodellierung", "VL", "WS"),
		testCourse("Wahlfach Wirtschaftsinformatik1", "KS", "SS"),
		testCourse("Einführung in die Softwareentwicklung", "VL", "SS"),
	}}
	completed := &fakeCompleted{names: []string{"VL Einführung in die Softwareentwicklung"}}
	planner := newTestPlanner(searcher, completed, &fakeCurriculum{})

	result := planner.Plan(context.Background(), "15 ECTS im SS26 bitte", uuid.New())

	assert.Equal(t, "SS", result.Parsed.Semester)
	assert.Equal(t, 15, result.Parsed.ECTSTarget)
	assert.NotNil(t, result.Filter)

	require.Len(t, result.Eligible, 1)
	assert.Equal(t, "Statistik", result.Eligible[0].Metadata.Name)

	reasons := make(map[string]ExclusionReason)
	for _, ex := range result.Excluded {
		reasons[ex.Course.Metadata.Name] = ex.Reason
	}
	assert.Equal(t, ReasonWrongSemester, reasons["Datenmodellierung"])
	assert.Equal(t, ReasonIsElective, reasons["Wahlfach Wirtschaftsinformatik1"])
	assert.Equal(t, ReasonAlreadyCompleted, reasons["Einführung in die Softwareentwicklung"])
}

func TestPlanCompletedLookupFailureDegradesGracefully(t *testing.T) {
	searcher := &fakeSearcher{rows: []models.Course{
		testCourse("Statistik", "KV", "SS"),
	}}
	completed := &fakeCompleted{err: errors.New("db down")}
	planner := newTestPlanner(searcher, completed, &fakeCurriculum{})

	result := planner.Plan(context.Background(), "Kurse im SS26", uuid.New())

	// Without completed data the course simply stays eligible.
	assert.Len(t, result.Eligible, 1)
	assert.Empty(t, result.Excluded)
}

func TestPlanCachesCurriculumData(t *testing.T) {
	searcher := &fakeSearcher{}
	curriculum := &fakeCurriculum{
		electives: []models.CurriculumCourse{{Name: "Wahlfach X"}},
	}
	planner := newTestPlanner(searcher, &fakeCompleted{}, curriculum)

	planner.Plan(context.Background(), "Kurse im SS26", uuid.New())
	planner.Plan(context.Background(), "Kurse im WS26", uuid.New())

	assert.Equal(t, 1, curriculum.electiveCalls)
}

func TestPlanRetriesCurriculumLoadAfterError(t *testing.T) {
	searcher := &fakeSearcher{}
	curriculum := &fakeCurriculum{err: errors.New("db down")}
	planner := newTestPlanner(searcher, &fakeCompleted{}, curriculum)

	planner.Plan(context.Background(), "Kurse im SS26", uuid.New())

	curriculum.err = nil
	planner.Plan(context.Background(), "Kurse im SS26", uuid.New())

	// The failed load was not cached; the second run hits the source again.
	assert.Equal(t, 2, curriculum.electiveCalls)
}

func TestAnswerFiltersOnlyCompleted(t *testing.T) {
	searcher := &fakeSearcher{rows: []models.Course{
		testCourse("Statistik", "KV", "WS"),
		testCourse("Datenmodellierung", "VL", "WS"),
	}}
	completed := &fakeCompleted{names: []string{"Datenmodellierung"}}
	planner := newTestPlanner(searcher, completed, &fakeCurriculum{})

	results := planner.Answer(context.Background(), "Wann findet Statistik statt?", uuid.New(), 10)

	require.Len(t, results, 1)
	assert.Equal(t, "Statistik", results[0].Metadata.Name)
}
