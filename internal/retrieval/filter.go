package retrieval

// Metadata field names used in filter expressions. They are part of the
// schema contract with the ingestion pipeline and must stay in sync with
// models.CourseMetadata.
const (
	FieldSemester = "semester"
	FieldDay      = "tag"
	FieldECTS     = "ects"
)

// BuildFilter turns parsed user intent into a metadata filter expression.
// Each parsed constraint contributes one condition; multiple conditions are
// combined with AND, a single one is returned bare, none at all yields nil
// (match everything).
func BuildFilter(q ParsedQuery) Condition {
	var conds []Condition

	if q.Semester != "" {
		// Year-round offerings ("SS+", "WS+") match either requested season.
		conds = append(conds, Or{
			Eq{Field: FieldSemester, Value: q.Semester},
			Eq{Field: FieldSemester, Value: q.Semester + "+"},
		})
	}

	if len(q.PreferredDays) > 0 {
		conds = append(conds, In{Field: FieldDay, Values: q.PreferredDays})
	}

	if q.ECTSTarget > 0 {
		// Per-course ceiling: a single LVA must not exceed the target. The
		// total plan sum is enforced later by the plan synthesizer.
		conds = append(conds, LtOrEq{Field: FieldECTS, Value: float64(q.ECTSTarget)})
	}

	switch len(conds) {
	case 0:
		return nil
	case 1:
		return conds[0]
	default:
		return And(conds)
	}
}
