package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQueryFullPlanningRequest(t *testing.T) {
	parsed := ParseQuery("15 ECTS im SS26, Montag und Mittwoch, ich möchte SOFT1 machen")

	assert.Equal(t, 15, parsed.ECTSTarget)
	assert.Equal(t, "SS", parsed.Semester)
	assert.Equal(t, []string{"Mo.", "Mi."}, parsed.PreferredDays)
	assert.Contains(t, parsed.DesiredCourses, "Einführung in die Softwareentwicklung")
	assert.Equal(t, "15 ECTS im SS26, Montag und Mittwoch, ich möchte SOFT1 machen", parsed.FreeText)
}

func TestParseQueryEmptyInput(t *testing.T) {
	parsed := ParseQuery("")

	assert.Zero(t, parsed.ECTSTarget)
	assert.Empty(t, parsed.Semester)
	assert.Empty(t, parsed.PreferredDays)
	assert.Empty(t, parsed.DesiredCourses)
}

func TestParseQuerySemesterForms(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"Kurse im WS25 bitte", "WS"},
		{"Kurse im ws 25 bitte", "WS"},
		{"Was gibt es im Sommersemester?", "SS"},
		{"Was gibt es im Wintersemester?", "WS"},
		{"Kurse ohne Semesterangabe", ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuery(tt.query).Semester)
		})
	}
}

func TestParseQueryDayAbbreviations(t *testing.T) {
	parsed := ParseQuery("Nur Mo. und Fr, 12 ects")

	assert.Equal(t, []string{"Mo.", "Fr."}, parsed.PreferredDays)
	assert.Equal(t, 12, parsed.ECTSTarget)
}

func TestParseQueryDuplicateDayMentions(t *testing.T) {
	parsed := ParseQuery("montag, Montag und nochmal Mo.")

	assert.Equal(t, []string{"Mo."}, parsed.PreferredDays)
}

func TestParseQueryAliasExpansion(t *testing.T) {
	parsed := ParseQuery("ich will soft2 und algodat machen")

	assert.Contains(t, parsed.DesiredCourses, "Vertiefung Softwareentwicklung")
	assert.Contains(t, parsed.DesiredCourses, "Algorithmen und Datenstrukturen")
}

func TestParseQueryFirstECTSNumberWins(t *testing.T) {
	parsed := ParseQuery("12 ECTS oder vielleicht 15 ECTS")

	assert.Equal(t, 12, parsed.ECTSTarget)
}

func TestParseQueryIsPure(t *testing.T) {
	query := "6 ects im WS25 am Dienstag"
	first := ParseQuery(query)
	second := ParseQuery(query)

	assert.Equal(t, first, second)
}
