package retrieval

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedQuery carries the structured intent extracted from one free-text
// planning request. FreeText keeps the original input verbatim for the
// embedding step. An ECTSTarget of 0 means no target was given.
type ParsedQuery struct {
	ECTSTarget     int
	Semester       string
	PreferredDays  []string
	DesiredCourses []string
	FreeText       string
}

var ectsPattern = regexp.MustCompile(`(\d{1,2})\s*ects`)

// Season-code-with-year forms take precedence over bare season names, so the
// pattern order here is significant.
var semesterPatterns = []struct {
	pattern *regexp.Regexp
	code    string
}{
	{regexp.MustCompile(`(?i)SS\s*\d{2}`), "SS"},
	{regexp.MustCompile(`(?i)WS\s*\d{2}`), "WS"},
	{regexp.MustCompile(`(?i)Sommersemester`), "SS"},
	{regexp.MustCompile(`(?i)Wintersemester`), "WS"},
}

var dayPatterns = []struct {
	pattern *regexp.Regexp
	code    string
}{
	{regexp.MustCompile(`\bmo\.?\b`), "Mo."},
	{regexp.MustCompile(`\bdi\.?\b`), "Di."},
	{regexp.MustCompile(`\bmi\.?\b`), "Mi."},
	{regexp.MustCompile(`\bdo\.?\b`), "Do."},
	{regexp.MustCompile(`\bfr\.?\b`), "Fr."},
	{regexp.MustCompile(`montag`), "Mo."},
	{regexp.MustCompile(`dienstag`), "Di."},
	{regexp.MustCompile(`mittwoch`), "Mi."},
	{regexp.MustCompile(`donnerstag`), "Do."},
	{regexp.MustCompile(`freitag`), "Fr."},
}

// courseAliases maps the short names students actually type to the canonical
// catalog names. One alias may expand to several LVAs.
var courseAliases = []struct {
	alias string
	names []string
}{
	{"soft1", []string{"Einführung in die Softwareentwicklung"}},
	{"esoft", []string{"Einführung in die Softwareentwicklung"}},
	{"soft2", []string{"Vertiefung Softwareentwicklung"}},
	{"algodat", []string{"Algorithmen und Datenstrukturen"}},
	{"algo", []string{"Algorithmen und Datenstrukturen"}},
	{"ewin", []string{"Einführung in die Wirtschaftsinformatik"}},
	{"bwl", []string{"Betriebswirtschaftslehre"}},
	{"dm", []string{"Datenmodellierung"}},
	{"dke", []string{"Data and Knowledge Engineering"}},
}

// ParseQuery extracts ECTS target, semester, preferred weekdays and desired
// course names from one free-text request. It is a pure function; the first
// match wins for ECTS and semester (a second ECTS number in the text is
// ignored, which is a documented limitation of the format).
func ParseQuery(query string) ParsedQuery {
	lower := strings.ToLower(query)

	parsed := ParsedQuery{FreeText: query}

	if m := ectsPattern.FindStringSubmatch(lower); m != nil {
		target, err := strconv.Atoi(m[1])
		if err == nil {
			parsed.ECTSTarget = target
		}
	}

	for _, sp := range semesterPatterns {
		if sp.pattern.MatchString(query) {
			parsed.Semester = sp.code
			break
		}
	}

	for _, dp := range dayPatterns {
		if dp.pattern.MatchString(lower) {
			if !containsString(parsed.PreferredDays, dp.code) {
				parsed.PreferredDays = append(parsed.PreferredDays, dp.code)
			}
		}
	}

	// Duplicates are possible when several aliases expand to the same LVA;
	// downstream consumers tolerate repeats.
	for _, ca := range courseAliases {
		if strings.Contains(lower, ca.alias) {
			parsed.DesiredCourses = append(parsed.DesiredCourses, ca.names...)
		}
	}

	return parsed
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
