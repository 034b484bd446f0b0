package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPrerequisiteTokensEmpty(t *testing.T) {
	assert.Nil(t, ExtractPrerequisiteTokens(""))
	assert.Empty(t, ExtractPrerequisiteTokens("keine besonderen Vorkenntnisse erforderlich"))
}

func TestExtractPrerequisiteTokensCodes(t *testing.T) {
	tokens := ExtractPrerequisiteTokens("Positive Absolvierung von SOFT1 und ALGO2")

	require.Len(t, tokens, 2)
	assert.Equal(t, PrereqToken{Value: "SOFT1", Kind: TokenCode}, tokens[0])
	assert.Equal(t, PrereqToken{Value: "ALGO2", Kind: TokenCode}, tokens[1])
}

func TestExtractPrerequisiteTokensCourseName(t *testing.T) {
	tokens := ExtractPrerequisiteTokens("VL Einführung in die Softwareentwicklung")

	require.Len(t, tokens, 1)
	assert.Equal(t, TokenName, tokens[0].Kind)
	assert.Equal(t, "Einführung in die Softwareentwicklung", tokens[0].Value)
}

func TestExtractPrerequisiteTokensStopwordsIgnored(t *testing.T) {
	tokens := ExtractPrerequisiteTokens("STEOP und 9 ECTS aus dem Fach")

	assert.Empty(t, tokens)
}

func TestExtractPrerequisiteTokensMixed(t *testing.T) {
	tokens := ExtractPrerequisiteTokens("UE Datenmodellierung, außerdem SOFT2")

	require.Len(t, tokens, 2)
	assert.Equal(t, PrereqToken{Value: "Datenmodellierung", Kind: TokenName}, tokens[0])
	assert.Equal(t, PrereqToken{Value: "SOFT2", Kind: TokenCode}, tokens[1])
}

func TestExtractPrerequisiteTokensIgnoresAbbreviationInsideWord(t *testing.T) {
	tokens := ExtractPrerequisiteTokens("GRUNDKURSE Statistik werden empfohlen")

	assert.Empty(t, tokens)
}

func TestExtractPrerequisiteTokensDeduplicates(t *testing.T) {
	tokens := ExtractPrerequisiteTokens("SOFT1 oder soft1, jedenfalls SOFT1")

	require.Len(t, tokens, 1)
	assert.Equal(t, "SOFT1", tokens[0].Value)
}
