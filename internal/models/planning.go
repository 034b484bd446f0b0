package models

import (
	"time"

	"github.com/google/uuid"
)

// Planning is one planning session owned by a user. The generated plan and
// the planning context used to build it are stored alongside so chat answers
// can reuse the exact parameters of plan creation.
type Planning struct {
	ID               int64     `db:"id"`
	UserID           uuid.UUID `db:"user_id"`
	Title            string    `db:"title"`
	Semester         string    `db:"semester"`
	TargetECTS       int       `db:"target_ects"`
	PreferredDays    []string  `db:"preferred_days"`
	MandatoryCourses string    `db:"mandatory_courses"`
	PlanJSON         []byte    `db:"plan_json"`
	PlanningContext  string    `db:"planning_context"`
	CreatedAt        time.Time `db:"created_at"`
	LastModified     time.Time `db:"last_modified"`
}

// IdealPlanEntry is one row of the recommended study progression. It gives
// the semester number in which an LVA is typically taken.
type IdealPlanEntry struct {
	SemesterNum  int     `db:"semester_num"`
	CourseName   string  `db:"lva_name"`
	SemesterType string  `db:"semester_type"`
	ECTS         float64 `db:"ects"`
}
