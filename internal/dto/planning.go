package dto

import "encoding/json"

type CreatePlanningRequest struct {
	Title            string   `json:"title" validate:"required,max=120"`
	Semester         string   `json:"semester" validate:"required"`
	TargetECTS       int      `json:"target_ects" validate:"required,min=1,max=60"`
	PreferredDays    []string `json:"preferred_days"`
	MandatoryCourses string   `json:"mandatory_courses"`
}

type UpdatePlanningRequest struct {
	Title string `json:"title" validate:"required,max=120"`
}

type PlanningResponse struct {
	ID               int64           `json:"id"`
	Title            string          `json:"title"`
	Semester         string          `json:"semester"`
	TargetECTS       int             `json:"target_ects"`
	PreferredDays    []string        `json:"preferred_days"`
	MandatoryCourses string          `json:"mandatory_courses"`
	Plan             json.RawMessage `json:"plan,omitempty"`
	CreatedAt        string          `json:"created_at"`
	LastModified     string          `json:"last_modified"`
}

type RecentPlanningsResponse struct {
	Plannings []PlanningResponse `json:"plannings"`
	Total     int                `json:"total"`
}

type GeneratedPlanResponse struct {
	PlanningID int64           `json:"planning_id"`
	Plan       json.RawMessage `json:"plan"`
	Excluded   []ExcludedInfo  `json:"excluded_lvas"`
}

// ExcludedInfo surfaces why a retrieved course was left out of the plan.
type ExcludedInfo struct {
	Name                 string   `json:"name"`
	Type                 string   `json:"type"`
	Reason               string   `json:"reason"`
	MissingPrerequisites []string `json:"missing_prerequisites,omitempty"`
}
