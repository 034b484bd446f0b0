package dto

type CourseResponse struct {
	Number        string  `json:"lva_nr,omitempty"`
	Name          string  `json:"lva_name"`
	Type          string  `json:"lva_type,omitempty"`
	ECTS          float64 `json:"ects,omitempty"`
	Semester      string  `json:"semester,omitempty"`
	Day           string  `json:"tag,omitempty"`
	Time          string  `json:"uhrzeit,omitempty"`
	Instructor    string  `json:"lva_leiter,omitempty"`
	Prerequisites string  `json:"anmeldevoraussetzungen,omitempty"`
	Similarity    float64 `json:"similarity,omitempty"`
}
