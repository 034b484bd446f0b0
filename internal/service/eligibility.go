package service

import (
	"strings"

	"github.com/SilviaMahr/StudyVerse/internal/models"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"go.uber.org/zap"
)

// Fuzzy-match thresholds. Empirically tuned against real catalog data;
// treat as calibration defaults, not exact constants.
const (
	// completedMatchThreshold decides whether a candidate name refers to a
	// course the user has already completed.
	completedMatchThreshold = 0.75
	// prereqCodeThreshold applies to short code-like prerequisite tokens.
	prereqCodeThreshold = 0.75
	// prereqNameThreshold applies to full course-name tokens, which carry
	// enough signal to tolerate a looser match.
	prereqNameThreshold = 0.65
)

// electiveMarkers flag a course as free-choice by name alone, independent of
// the registry.
var electiveMarkers = []string{"wahlfach", "freie studienleistung"}

type ExclusionReason string

const (
	ReasonAlreadyCompleted    ExclusionReason = "already_completed"
	ReasonMissingPrerequisite ExclusionReason = "missing_prerequisite"
	ReasonWrongSemester       ExclusionReason = "wrong_semester"
	ReasonIsElective          ExclusionReason = "is_elective"
)

// ExcludedCourse carries the exclusion reason for downstream explanation.
// MissingPrerequisites is set only for ReasonMissingPrerequisite.
type ExcludedCourse struct {
	Course               models.Course
	Reason               ExclusionReason
	MissingPrerequisites []string
}

// EligibilityResult partitions one candidate set. Only Eligible is normally
// passed to the plan synthesizer; Excluded is retained so the user can be
// told why courses were omitted.
type EligibilityResult struct {
	Eligible []models.Course
	Excluded []ExcludedCourse
}

// FilterOptions configures one filtering call. TargetSemester enables the
// semester rule; Electives and Chains come from the curriculum data
// collaborator; OriginalQuery and UserNamed let explicitly requested courses
// bypass the elective exclusion.
type FilterOptions struct {
	TargetSemester string
	OriginalQuery  string
	UserNamed      []string
	Electives      []string
	Chains         map[string][]string
}

// SimilarityFunc scores two normalized strings in [0,1].
type SimilarityFunc func(a, b string) float64

// EligibilityFilter partitions retrieved candidates into eligible and
// excluded using completed-course history, elective classification,
// semester availability and fuzzy prerequisite resolution.
type EligibilityFilter struct {
	similarity SimilarityFunc
	logger     *zap.Logger
}

// NewEligibilityFilter builds a filter with the given similarity metric;
// nil selects normalized Levenshtein similarity.
func NewEligibilityFilter(similarity SimilarityFunc, logger *zap.Logger) *EligibilityFilter {
	if similarity == nil {
		lev := metrics.NewLevenshtein()
		similarity = func(a, b string) float64 {
			return strutil.Similarity(a, b, lev)
		}
	}
	return &EligibilityFilter{
		similarity: similarity,
		logger:     logger,
	}
}

// Filter applies the full decision sequence to every candidate. The first
// matching rule wins: wrong semester, elective, already completed, missing
// prerequisite; anything surviving all four is eligible.
func (f *EligibilityFilter) Filter(candidates []models.Course, completed []string, opts FilterOptions) EligibilityResult {
	var result EligibilityResult

	for _, c := range candidates {
		if excluded, ok := f.check(c, completed, opts); ok {
			result.Excluded = append(result.Excluded, excluded)
			continue
		}
		result.Eligible = append(result.Eligible, c)
	}

	return result
}

// FilterCompleted is the reduced configuration for the general Q&A path:
// only the already-completed exclusion applies.
func (f *EligibilityFilter) FilterCompleted(candidates []models.Course, completed []string) EligibilityResult {
	var result EligibilityResult

	for _, c := range candidates {
		if f.isCompleted(c, completed) {
			result.Excluded = append(result.Excluded, ExcludedCourse{Course: c, Reason: ReasonAlreadyCompleted})
			continue
		}
		result.Eligible = append(result.Eligible, c)
	}

	return result
}

func (f *EligibilityFilter) check(c models.Course, completed []string, opts FilterOptions) (ExcludedCourse, bool) {
	name := c.Metadata.Name

	// 1. Semester availability. Only concrete courses are checked: generic
	// curriculum chunks have no name and stay in play. A course without any
	// semester metadata is a non-schedulable curriculum reference.
	if opts.TargetSemester != "" && name != "" {
		sem := c.Metadata.Semester
		if sem == "" || (sem != opts.TargetSemester && sem != opts.TargetSemester+"+") {
			return ExcludedCourse{Course: c, Reason: ReasonWrongSemester}, true
		}
	}

	// 2. Elective exclusion, unless the user asked for the course by name.
	if name != "" && !f.userNamed(name, opts) && f.isElective(name, opts.Electives) {
		return ExcludedCourse{Course: c, Reason: ReasonIsElective}, true
	}

	// 3. Already completed.
	if f.isCompleted(c, completed) {
		return ExcludedCourse{Course: c, Reason: ReasonAlreadyCompleted}, true
	}

	// 4. Prerequisite satisfaction.
	if missing := f.missingPrerequisites(c, completed, opts.Chains); len(missing) > 0 {
		return ExcludedCourse{
			Course:               c,
			Reason:               ReasonMissingPrerequisite,
			MissingPrerequisites: missing,
		}, true
	}

	return ExcludedCourse{}, false
}

func (f *EligibilityFilter) userNamed(name string, opts FilterOptions) bool {
	lowerName := strings.ToLower(name)

	if opts.OriginalQuery != "" && strings.Contains(strings.ToLower(opts.OriginalQuery), lowerName) {
		return true
	}

	for _, named := range opts.UserNamed {
		lowerNamed := strings.ToLower(named)
		if lowerNamed == lowerName ||
			strings.Contains(lowerName, lowerNamed) ||
			strings.Contains(lowerNamed, lowerName) {
			return true
		}
	}

	return false
}

func (f *EligibilityFilter) isElective(name string, electives []string) bool {
	lowerName := strings.ToLower(name)

	for _, marker := range electiveMarkers {
		if strings.Contains(lowerName, marker) {
			return true
		}
	}

	for _, elective := range electives {
		lowerElective := strings.ToLower(elective)
		if lowerName == lowerElective ||
			strings.Contains(lowerName, lowerElective) ||
			strings.Contains(lowerElective, lowerName) {
			return true
		}
	}

	return false
}

func (f *EligibilityFilter) isCompleted(c models.Course, completed []string) bool {
	name := strings.ToLower(strings.TrimSpace(c.Metadata.Name))
	number := c.Metadata.Number

	for _, done := range completed {
		doneNorm := strings.ToLower(strings.TrimSpace(done))

		if name != "" && f.similarity(name, doneNorm) >= completedMatchThreshold {
			return true
		}
		if number != "" && strings.Contains(doneNorm, strings.ToLower(number)) {
			return true
		}
	}

	return false
}

// missingPrerequisites returns the prerequisite references no completed
// course satisfies. Unparseable prerequisite text with no known chain yields
// nothing: false exclusion is worse than occasional false inclusion for a
// recommendation tool, so the filter fails open.
func (f *EligibilityFilter) missingPrerequisites(c models.Course, completed []string, chains map[string][]string) []string {
	tokens := ExtractPrerequisiteTokens(c.Metadata.Prerequisites)

	if len(tokens) == 0 {
		chain := lookupChain(chains, c.Metadata.Name)
		if len(chain) == 0 {
			if c.Metadata.Prerequisites != "" {
				f.logger.Debug("unresolvable prerequisite text, keeping course eligible",
					zap.String("course", c.Metadata.Name),
					zap.String("prerequisites", c.Metadata.Prerequisites))
			}
			return nil
		}
		for _, required := range chain {
			tokens = append(tokens, PrereqToken{Value: required, Kind: TokenName})
		}
	}

	var missing []string
	for _, token := range tokens {
		if !f.tokenSatisfied(token, completed) {
			missing = append(missing, token.Value)
		}
	}

	return missing
}

func (f *EligibilityFilter) tokenSatisfied(token PrereqToken, completed []string) bool {
	threshold := prereqCodeThreshold
	if token.Kind == TokenName {
		threshold = prereqNameThreshold
	}

	tokenNorm := strings.ToLower(strings.TrimSpace(token.Value))

	for _, done := range completed {
		doneNorm := strings.ToLower(strings.TrimSpace(done))
		if doneNorm == "" {
			continue
		}

		if f.similarity(tokenNorm, doneNorm) >= threshold {
			return true
		}
		if strings.Contains(doneNorm, tokenNorm) || strings.Contains(tokenNorm, doneNorm) {
			return true
		}
	}

	return false
}

func lookupChain(chains map[string][]string, name string) []string {
	if name == "" || len(chains) == 0 {
		return nil
	}
	if chain, ok := chains[name]; ok {
		return chain
	}
	lowerName := strings.ToLower(name)
	for course, chain := range chains {
		if strings.ToLower(course) == lowerName {
			return chain
		}
	}
	return nil
}
