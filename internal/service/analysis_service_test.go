package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalAnalyzeKeywordRanking(t *testing.T) {
	entries := []AnalysisEntry{
		{Name: "Mina", Content: "Reading reading reading club today"},
		{Name: "Juno", Content: "Reading club was fun, fun fun fun."},
	}

	result := localAnalyze(entries)

	require.NotNil(t, result)
	assert.True(t, result.Fallback)
	require.NotEmpty(t, result.Keywords)
	// Ties sort by text, so "fun" lands ahead of "reading".
	assert.Equal(t, "fun", result.Keywords[0].Text)
	assert.Equal(t, 4, result.Keywords[0].Count)
	assert.Equal(t, "reading", result.Keywords[1].Text)
	assert.Equal(t, 4, result.Keywords[1].Count)
}

func TestLocalAnalyzeQuotesLongestEntryPerStudent(t *testing.T) {
	entries := []AnalysisEntry{
		{Name: "Mina", Content: "short note"},
		{Name: "Mina", Content: "a much longer journal entry about the science fair"},
		{Name: "Juno", Content: "today was okay"},
	}

	result := localAnalyze(entries)

	require.Len(t, result.Recommendations, 2)
	assert.Equal(t, "Mina", result.Recommendations[0].Name)
	assert.Equal(t, "a much longer journal entry about the science fair", result.Recommendations[0].Quote)
	assert.Equal(t, "Juno", result.Recommendations[1].Name)
	require.Len(t, result.FeedbackSuggestions, 2)
}

func TestLocalAnalyzeCapsKeywords(t *testing.T) {
	entries := []AnalysisEntry{{Name: "Mina", Content: "alpha beta gamma delta epsilon zeta " +
		"theta iota kappa lambda sigma omega phi chi psi"}}

	result := localAnalyze(entries)

	assert.Len(t, result.Keywords, 10)
}
