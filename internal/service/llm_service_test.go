package service

import (
	"strings"
	"testing"

	"github.com/SilviaMahr/StudyVerse/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"semester":"SS26"}`, `{"semester":"SS26"}`},
		{"```json\n{\"semester\":\"SS26\"}\n```", `{"semester":"SS26"}`},
		{"```\n{}\n```", "{}"},
		{"  {} ", "{}"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFence(tt.in))
	}
}

func TestFormatIdealPlanGroupsBySemester(t *testing.T) {
	out := FormatIdealPlan([]models.IdealPlanEntry{
		{SemesterNum: 2, CourseName: "KV Mathematik und Logik", SemesterType: "SS", ECTS: 6},
		{SemesterNum: 1, CourseName: "VL Einführung in die Wirtschaftsinformatik", SemesterType: "WS", ECTS: 3},
	})

	assert.Contains(t, out, "**Semester 1:**")
	assert.Contains(t, out, "**Semester 2:**")
	assert.Less(t,
		strings.Index(out, "**Semester 1:**"),
		strings.Index(out, "**Semester 2:**"))
}

func TestFormatIdealPlanEmpty(t *testing.T) {
	assert.Equal(t, "Kein idealtypischer Studienplan verfügbar.", FormatIdealPlan(nil))
}

func TestFormatCoursesForPromptIncludesPrerequisites(t *testing.T) {
	course := testCourse("Vertiefung Softwareentwicklung", "VL", "SS")
	course.Metadata.Prerequisites = "VL Einführung in die Softwareentwicklung"
	course.Content = "Detailbeschreibung aus dem Studienhandbuch"

	out := formatCoursesForPrompt([]models.Course{course})

	assert.Contains(t, out, "Vertiefung Softwareentwicklung")
	assert.Contains(t, out, "VL Einführung in die Softwareentwicklung")
	assert.Contains(t, out, "Detailbeschreibung aus dem Studienhandbuch")
}

func TestFormatCoursesForPromptEmpty(t *testing.T) {
	assert.Equal(t, "Keine LVAs verfügbar.", formatCoursesForPrompt(nil))
}

func TestPlanJSONFormatPicksSemesterFromQuery(t *testing.T) {
	assert.Contains(t, planJSONFormat("WS25 Planung bitte"), `"semester": "WS25"`)
	assert.Contains(t, planJSONFormat("nur irgendwas"), `"semester": "SS26"`)
}

func TestPlanJSONFormatTrimsPunctuation(t *testing.T) {
	assert.Contains(t, planJSONFormat("Plane WS25, mit 15 ECTS"), `"semester": "WS25"`)
	assert.Contains(t, planJSONFormat("(SS26) bitte"), `"semester": "SS26"`)
}
