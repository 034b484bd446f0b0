package models

// CurriculumCourse is one entry of the official curriculum (lvas table),
// independent of any catalog chunk. Hierarchy levels classify the entry,
// e.g. "Wahlfach" at level 0 marks the elective subtree.
type CurriculumCourse struct {
	ID         int64   `db:"id"`
	Name       string  `db:"name"`
	ECTS       float64 `db:"ects"`
	Hierarchy0 string  `db:"hierarchielevel0"`
	Hierarchy1 string  `db:"hierarchielevel1"`
	Hierarchy2 string  `db:"hierarchielevel2"`
}

// CompletedCourse is one (user, course) association. The set is append and
// remove only; it is the ground truth for "already done" and the basis set
// for prerequisite matching.
type CompletedCourse struct {
	CourseID int64   `db:"lva_id"`
	Name     string  `db:"name"`
	ECTS     float64 `db:"ects"`
}
