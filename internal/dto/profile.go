package dto

type CompletedCourseResponse struct {
	CourseID int64   `json:"lva_id"`
	Name     string  `json:"lva_name"`
	ECTS     float64 `json:"ects"`
}

type UpdateCompletedRequest struct {
	CourseIDs []int64 `json:"lva_ids" validate:"required"`
}

type CurriculumCourseResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"lva_name"`
	ECTS       float64 `json:"ects"`
	Hierarchy0 string  `json:"hierarchielevel0"`
	Hierarchy1 string  `json:"hierarchielevel1,omitempty"`
	Hierarchy2 string  `json:"hierarchielevel2,omitempty"`
}

type CurriculumResponse struct {
	Courses []CurriculumCourseResponse `json:"lvas"`
	Total   int                        `json:"total"`
}
