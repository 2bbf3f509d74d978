package classifier

import (
	"context"
	"strings"

	"github.com/postfolio/postfolio-backend/internal/domain"
)

const (
	heuristicMaxTags       = 5
	heuristicSummaryLength = 30
)

var heuristicStopwords = map[string]struct{}{
	"the":  {},
	"and":  {},
	"with": {},
	"for":  {},
	"from": {},
	"that": {},
	"this": {},
	"have": {},
}

// Heuristic is a local keyword classifier used when no API key is
// configured. It never fails on non-empty content, so deployments
// without the external service still get a type and tags on every
// post.
type Heuristic struct{}

// NewHeuristic creates a Heuristic classifier
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Classify derives type and tags from keyword containment
func (h *Heuristic) Classify(_ context.Context, content string) (*Result, error) {
	if strings.TrimSpace(content) == "" {
		return nil, newError(ReasonEmptyInput, nil)
	}

	return &Result{
		Type:    detectType(content),
		Tags:    extractTags(content),
		Summary: summarize(content),
	}, nil
}

func detectType(content string) domain.PostType {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "built") || strings.Contains(lower, "developed"):
		return domain.TypeProject
	case strings.Contains(lower, "work") || strings.Contains(lower, " at "):
		return domain.TypeExperience
	case strings.Contains(lower, "learn") || strings.Contains(lower, "study"):
		return domain.TypeEducation
	}
	return domain.TypeAchievement
}

// extractTags picks the first few distinctive words; trailing
// punctuation is stripped so "Go," and "Go" count as one tag
func extractTags(content string) []string {
	var tags []string
	for _, word := range strings.Fields(content) {
		word = strings.Trim(word, ".,;:!?\"'()")
		if len(word) <= 3 {
			continue
		}
		if _, stop := heuristicStopwords[strings.ToLower(word)]; stop {
			continue
		}
		tags = append(tags, word)
		if len(tags) == heuristicMaxTags {
			break
		}
	}
	if len(tags) == 0 {
		tags = []string{"General"}
	}
	return tags
}

func summarize(content string) string {
	runes := []rune(content)
	if len(runes) > heuristicSummaryLength {
		return string(runes[:heuristicSummaryLength]) + "..."
	}
	return content
}
