package service

import (
	"testing"

	"github.com/SilviaMahr/StudyVerse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testCourse(name, courseType, semester string) models.Course {
	return models.Course{
		Metadata: models.CourseMetadata{
			Name:     name,
			Type:     models.CourseType(courseType),
			Semester: semester,
			ECTS:     3,
		},
	}
}

func newTestFilter() *EligibilityFilter {
	return NewEligibilityFilter(nil, zap.NewNop())
}

func TestFilterWrongSemester(t *testing.T) {
	f := newTestFilter()

	courses := []models.Course{
		testCourse("Datenmodellierung", "VL", "WS"),
		testCourse("Statistik", "KV", "SS"),
		testCourse("Operating Systems", "VL", "SS+"),
	}

	result := f.Filter(courses, nil, FilterOptions{TargetSemester: "SS"})

	require.Len(t, result.Excluded, 1)
	assert.Equal(t, "Datenmodellierung", result.Excluded[0].Course.Metadata.Name)
	assert.Equal(t, ReasonWrongSemester, result.Excluded[0].Reason)
	assert.Len(t, result.Eligible, 2)
}

func TestFilterNoSemesterMetadataFailsSemesterRule(t *testing.T) {
	f := newTestFilter()

	result := f.Filter([]models.Course{
		testCourse("Informationsmanagement", "VL", ""),
	}, nil, FilterOptions{TargetSemester: "WS"})

	require.Len(t, result.Excluded, 1)
	assert.Equal(t, ReasonWrongSemester, result.Excluded[0].Reason)
}

func TestFilterUnnamedChunksSkipSemesterRule(t *testing.T) {
	f := newTestFilter()

	// Curriculum chunks carry no course name and are never schedulable
	// entities; the semester rule leaves them alone.
	result := f.Filter([]models.Course{
		{Content: "Allgemeine Studieninformationen"},
	}, nil, FilterOptions{TargetSemester: "WS"})

	assert.Empty(t, result.Excluded)
	assert.Len(t, result.Eligible, 1)
}

func TestFilterWithoutTargetSemesterSkipsSemesterRule(t *testing.T) {
	f := newTestFilter()

	result := f.Filter([]models.Course{
		testCourse("Statistik", "KV", "WS"),
	}, nil, FilterOptions{})

	assert.Empty(t, result.Excluded)
}

func TestFilterElectiveByNameMarker(t *testing.T) {
	f := newTestFilter()

	result := f.Filter([]models.Course{
		testCourse("Wahlfach Wirtschaftsinformatik1", "KS", "SS"),
		testCourse("Freie Studienleistungen1", "KS", "SS"),
	}, nil, FilterOptions{TargetSemester: "SS"})

	require.Len(t, result.Excluded, 2)
	for _, ex := range result.Excluded {
		assert.Equal(t, ReasonIsElective, ex.Reason)
	}
}

func TestFilterElectiveFromRegistry(t *testing.T) {
	f := newTestFilter()

	result := f.Filter([]models.Course{
		testCourse("Spezialthemen Machine Learning", "KV", "SS"),
	}, nil, FilterOptions{
		TargetSemester: "SS",
		Electives:      []string{"Spezialthemen Machine Learning"},
	})

	require.Len(t, result.Excluded, 1)
	assert.Equal(t, ReasonIsElective, result.Excluded[0].Reason)
}

func TestFilterUserNamedElectiveStaysEligible(t *testing.T) {
	f := newTestFilter()

	result := f.Filter([]models.Course{
		testCourse("Wahlfach Wirtschaftsinformatik1", "KS", "SS"),
	}, nil, FilterOptions{
		TargetSemester: "SS",
		OriginalQuery:  "ich möchte das Wahlfach Wirtschaftsinformatik1 machen",
	})

	assert.Empty(t, result.Excluded)
	assert.Len(t, result.Eligible, 1)
}

func TestFilterUserNamedListBypassesElectiveRule(t *testing.T) {
	f := newTestFilter()

	result := f.Filter([]models.Course{
		testCourse("Wahlfach Wirtschaftswissenschaften1", "KS", "SS"),
	}, nil, FilterOptions{
		TargetSemester: "SS",
		UserNamed:      []string{"Wahlfach Wirtschaftswissenschaften1"},
	})

	assert.Empty(t, result.Excluded)
}

func TestFilterAlreadyCompletedExactName(t *testing.T) {
	f := newTestFilter()

	result := f.Filter([]models.Course{
		testCourse("Einführung in die Softwareentwicklung", "VL", "SS"),
		testCourse("Vertiefung Softwareentwicklung", "VL", "SS"),
	}, []string{"VL Einführung in die Softwareentwicklung"}, FilterOptions{})

	require.Len(t, result.Excluded, 1)
	assert.Equal(t, ReasonAlreadyCompleted, result.Excluded[0].Reason)
	assert.Equal(t, "Einführung in die Softwareentwicklung", result.Excluded[0].Course.Metadata.Name)
}

func TestFilterCompletedByCourseNumber(t *testing.T) {
	f := newTestFilter()

	course := testCourse("Operating Systems", "VL", "SS")
	course.Metadata.Number = "353.019"

	result := f.Filter([]models.Course{course}, []string{"353.019 Operating Systems"}, FilterOptions{})

	require.Len(t, result.Excluded, 1)
	assert.Equal(t, ReasonAlreadyCompleted, result.Excluded[0].Reason)
}

func TestFilterMissingPrerequisite(t *testing.T) {
	f := newTestFilter()

	course := testCourse("Vertiefung Softwareentwicklung", "VL", "SS")
	course.Metadata.Prerequisites = "VL Einführung in die Softwareentwicklung"

	result := f.Filter([]models.Course{course}, nil, FilterOptions{})

	require.Len(t, result.Excluded, 1)
	assert.Equal(t, ReasonMissingPrerequisite, result.Excluded[0].Reason)
	assert.Equal(t, []string{"Einführung in die Softwareentwicklung"}, result.Excluded[0].MissingPrerequisites)
}

func TestFilterPrerequisiteSatisfiedByCompleted(t *testing.T) {
	f := newTestFilter()

	course := testCourse("Vertiefung Softwareentwicklung", "VL", "SS")
	course.Metadata.Prerequisites = "VL Einführung in die Softwareentwicklung"

	result := f.Filter([]models.Course{course}, []string{"Einführung in die Softwareentwicklung"}, FilterOptions{})

	assert.Empty(t, result.Excluded)
	assert.Len(t, result.Eligible, 1)
}

func TestFilterFailsOpenOnUnparseablePrerequisites(t *testing.T) {
	f := newTestFilter()

	course := testCourse("Buchhaltung nach UGB", "KS", "SS")
	course.Metadata.Prerequisites = "keine besonderen Vorkenntnisse erforderlich"

	result := f.Filter([]models.Course{course}, nil, FilterOptions{})

	assert.Empty(t, result.Excluded)
	assert.Len(t, result.Eligible, 1)
}

func TestFilterLogsUnresolvablePrerequisiteText(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	f := NewEligibilityFilter(nil, zap.New(core))

	course := testCourse("Buchhaltung nach UGB", "KS", "SS")
	course.Metadata.Prerequisites = "keine besonderen Vorkenntnisse erforderlich"

	result := f.Filter([]models.Course{course}, nil, FilterOptions{})

	require.Len(t, result.Eligible, 1)
	entries := logs.FilterMessage("unresolvable prerequisite text, keeping course eligible").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Buchhaltung nach UGB", entries[0].ContextMap()["course"])
}

func TestFilterChainFallbackWhenNoTokens(t *testing.T) {
	f := newTestFilter()

	course := testCourse("Vertiefung Softwareentwicklung", "VL", "SS")
	course.Metadata.Prerequisites = "siehe Studienhandbuch"

	chains := map[string][]string{
		"Vertiefung Softwareentwicklung": {"Einführung in die Softwareentwicklung"},
	}

	blocked := f.Filter([]models.Course{course}, nil, FilterOptions{Chains: chains})
	require.Len(t, blocked.Excluded, 1)
	assert.Equal(t, ReasonMissingPrerequisite, blocked.Excluded[0].Reason)

	passed := f.Filter([]models.Course{course}, []string{"Einführung in die Softwareentwicklung"}, FilterOptions{Chains: chains})
	assert.Empty(t, passed.Excluded)
}

func TestFilterDecisionOrderSemesterBeforeCompleted(t *testing.T) {
	f := newTestFilter()

	course := testCourse("Statistik", "KV", "WS")

	result := f.Filter([]models.Course{course}, []string{"Statistik"}, FilterOptions{TargetSemester: "SS"})

	require.Len(t, result.Excluded, 1)
	assert.Equal(t, ReasonWrongSemester, result.Excluded[0].Reason)
}

func TestFilterThresholdsByTokenKind(t *testing.T) {
	// A similarity of 0.7 satisfies name tokens (threshold 0.65) but not
	// code tokens (threshold 0.75).
	f := NewEligibilityFilter(func(a, b string) float64 { return 0.7 }, zap.NewNop())

	nameCourse := testCourse("Vertiefung Softwareentwicklung", "VL", "SS")
	nameCourse.Metadata.Prerequisites = "VL Einführung in die Softwareentwicklung"

	codeCourse := testCourse("Software Engineering", "VL", "SS")
	codeCourse.Metadata.Prerequisites = "Absolvierung von SOFT2"

	result := f.Filter([]models.Course{nameCourse, codeCourse}, []string{"irgendein Kurs"}, FilterOptions{})

	require.Len(t, result.Excluded, 1)
	assert.Equal(t, "Software Engineering", result.Excluded[0].Course.Metadata.Name)
	assert.Equal(t, ReasonMissingPrerequisite, result.Excluded[0].Reason)
	assert.Len(t, result.Eligible, 1)
}

func TestFilterIdempotent(t *testing.T) {
	f := newTestFilter()

	courses := []models.Course{
		testCourse("Statistik", "KV", "SS"),
		testCourse("Datenmodellierung", "VL", "SS"),
	}

	first := f.Filter(courses, nil, FilterOptions{TargetSemester: "SS"})
	second := f.Filter(first.Eligible, nil, FilterOptions{TargetSemester: "SS"})

	assert.Equal(t, first.Eligible, second.Eligible)
	assert.Empty(t, second.Excluded)
}

func TestFilterCompletedOnly(t *testing.T) {
	f := newTestFilter()

	courses := []models.Course{
		testCourse("Statistik", "KV", "WS"),
		testCourse("Wahlfach Wirtschaftsinformatik1", "KS", "SS"),
		testCourse("Datenmodellierung", "VL", "WS"),
	}

	result := f.FilterCompleted(courses, []string{"Datenmodellierung"})

	// Only the completed rule applies: wrong semesters and electives pass.
	require.Len(t, result.Excluded, 1)
	assert.Equal(t, "Datenmodellierung", result.Excluded[0].Course.Metadata.Name)
	assert.Equal(t, ReasonAlreadyCompleted, result.Excluded[0].Reason)
	assert.Len(t, result.Eligible, 2)
}
