package service

import (
	"regexp"
	"strings"
)

// PrereqTokenKind distinguishes short code-like references (e.g. "SOFT1")
// from full course-name references (e.g. "VL Einführung in die
// Softwareentwicklung"). The matcher applies a looser threshold to the
// longer name forms.
type PrereqTokenKind int

const (
	TokenCode PrereqTokenKind = iota
	TokenName
)

// PrereqToken is one prerequisite reference extracted from the free-text
// registration-requirements field of a course.
type PrereqToken struct {
	Value string
	Kind  PrereqTokenKind
}

// prereqStopwords are uppercase words that look like course codes but are
// type abbreviations, conjunctions or units.
var prereqStopwords = map[string]struct{}{
	"VL": {}, "UE": {}, "PR": {}, "SE": {}, "KS": {}, "KV": {},
	"PS": {}, "PE": {}, "PJ": {}, "KT": {},
	"UND": {}, "ODER": {}, "BZW": {}, "SOWIE": {},
	"ECTS": {}, "LVA": {}, "STEOP": {},
}

var (
	codeTokenPattern = regexp.MustCompile(`^[A-ZÄÖÜ]{2,6}[0-9]*$`)
	// A type abbreviation followed by a capitalized phrase is read as a full
	// course-name reference, up to the next punctuation.
	nameTokenPattern = regexp.MustCompile(`\b(?:VL|UE|PR|SE|KS|KV|PS|PE|PJ|KT)\s+([A-ZÄÖÜ][^,.;:()\n]*)`)
)

// ExtractPrerequisiteTokens tokenizes a free-text prerequisite description
// into typed references. An empty result means the text carries nothing the
// matcher can check; the eligibility filter fails open in that case.
func ExtractPrerequisiteTokens(text string) []PrereqToken {
	if text == "" {
		return nil
	}

	var tokens []PrereqToken
	seen := make(map[string]struct{})

	add := func(value string, kind PrereqTokenKind) {
		key := strings.ToLower(strings.TrimSpace(value))
		if key == "" {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		tokens = append(tokens, PrereqToken{Value: strings.TrimSpace(value), Kind: kind})
	}

	for _, m := range nameTokenPattern.FindAllStringSubmatch(text, -1) {
		add(m[1], TokenName)
	}

	for _, word := range strings.FieldsFunc(text, func(r rune) bool {
		return !isTokenRune(r)
	}) {
		if _, stop := prereqStopwords[word]; stop {
			continue
		}
		if codeTokenPattern.MatchString(word) {
			add(word, TokenCode)
		}
	}

	return tokens
}

func isTokenRune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == 'Ä' || r == 'Ö' || r == 'Ü' || r == 'ä' || r == 'ö' || r == 'ü' || r == 'ß':
		return true
	}
	return false
}
