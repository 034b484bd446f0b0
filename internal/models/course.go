package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CourseType is the LVA type abbreviation used by the JKU course catalogs.
type CourseType string

const (
	CourseTypeLecture            CourseType = "VL" // Vorlesung
	CourseTypeExercise           CourseType = "UE" // Übung
	CourseTypePracticum          CourseType = "PR" // Praktikum
	CourseTypeSeminar            CourseType = "SE" // Seminar
	CourseTypeCourse             CourseType = "KS" // Kurs
	CourseTypeCourseWithExercise CourseType = "KV" // Kombinierte LVA
	CourseTypeProseminar         CourseType = "PS" // Proseminar
	CourseTypeProjectExercise    CourseType = "PE" // Projektübung
	CourseTypeProject            CourseType = "PJ" // Projekt
	CourseTypeCompetenceTraining CourseType = "KT" // Kompetenztraining
)

// CourseMetadata is the structured part of a catalog chunk. Field names are
// the schema contract with the ingestion pipeline that fills studyverse_data.
type CourseMetadata struct {
	Number        string     `json:"lva_nr"`
	Name          string     `json:"lva_name"`
	Type          CourseType `json:"lva_type"`
	ECTS          float64    `json:"ects"`
	Semester      string     `json:"semester"`
	Day           string     `json:"tag"`
	Time          string     `json:"uhrzeit"`
	Instructor    string     `json:"lva_leiter"`
	Prerequisites string     `json:"anmeldevoraussetzungen"`
}

// ParseCourseMetadata validates a raw metadata document at the retrieval
// boundary. Rows whose metadata is not a well-formed JSON object are rejected
// here instead of being handled ad hoc downstream.
func ParseCourseMetadata(raw []byte) (CourseMetadata, error) {
	var md CourseMetadata
	if len(raw) == 0 {
		return md, fmt.Errorf("empty metadata document")
	}
	if err := json.Unmarshal(raw, &md); err != nil {
		return md, fmt.Errorf("malformed metadata document: %w", err)
	}
	return md, nil
}

// CourseIdentity keys one course for planning purposes. Two chunks with the
// same identity describe different time-slot offerings of the same LVA.
type CourseIdentity struct {
	Name string
	Type CourseType
}

// Course is one retrievable catalog chunk enriched with its similarity to the
// query embedding. Similarity is only meaningful within one retrieval call.
type Course struct {
	ID         int64
	Content    string
	Metadata   CourseMetadata
	SourceURL  string
	Similarity float64
}

// Identity returns the (name, type) key of the course. The second return is
// false for generic curriculum chunks that carry no course name or type;
// those deduplicate by row instead.
func (c Course) Identity() (CourseIdentity, bool) {
	if c.Metadata.Name == "" || c.Metadata.Type == "" {
		return CourseIdentity{}, false
	}
	return CourseIdentity{Name: c.Metadata.Name, Type: c.Metadata.Type}, true
}

// YearRound reports whether the semester code marks a course offered in both
// semesters ("SS+" / "WS+").
func YearRound(semester string) bool {
	return strings.HasSuffix(semester, "+")
}
