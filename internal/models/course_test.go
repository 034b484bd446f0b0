package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCourseMetadata(t *testing.T) {
	raw := []byte(`{
		"lva_nr": "256.100",
		"lva_name": "Einführung in die Softwareentwicklung",
		"lva_type": "VL",
		"ects": 3.0,
		"semester": "SS",
		"tag": "Mo.",
		"uhrzeit": "08:30 - 10:00",
		"lva_leiter": "Wieland Schwinger",
		"anmeldevoraussetzungen": null
	}`)

	md, err := ParseCourseMetadata(raw)

	require.NoError(t, err)
	assert.Equal(t, "256.100", md.Number)
	assert.Equal(t, CourseTypeLecture, md.Type)
	assert.Equal(t, 3.0, md.ECTS)
	assert.Empty(t, md.Prerequisites)
}

func TestParseCourseMetadataRejectsMalformed(t *testing.T) {
	_, err := ParseCourseMetadata([]byte(`{"lva_name": `))
	assert.Error(t, err)

	_, err = ParseCourseMetadata(nil)
	assert.Error(t, err)
}

func TestCourseIdentity(t *testing.T) {
	full := Course{Metadata: CourseMetadata{Name: "Statistik", Type: "KV"}}
	id, ok := full.Identity()
	require.True(t, ok)
	assert.Equal(t, CourseIdentity{Name: "Statistik", Type: "KV"}, id)

	// Same LVA, different type, is a different planning entity.
	other := Course{Metadata: CourseMetadata{Name: "Statistik", Type: "UE"}}
	otherID, _ := other.Identity()
	assert.NotEqual(t, id, otherID)

	_, ok = Course{Content: "Curriculum Abschnitt"}.Identity()
	assert.False(t, ok)
}

func TestYearRound(t *testing.T) {
	assert.True(t, YearRound("SS+"))
	assert.True(t, YearRound("WS+"))
	assert.False(t, YearRound("SS"))
	assert.False(t, YearRound(""))
}
