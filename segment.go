package mcqgenerator

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	sentenceRe   = regexp.MustCompile(`[.!?]+`)
)

// Fragments shorter than this after trimming are noise, not sentences.
const minFragmentLength = 20

// SplitSentences collapses whitespace runs to single spaces, splits the
// text on runs of sentence-terminating punctuation, and returns the
// trimmed fragments longer than the retention threshold, in order.
func SplitSentences(text string) []string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	var out []string
	for _, part := range sentenceRe.Split(text, -1) {
		part = strings.TrimSpace(part)
		if len(part) > minFragmentLength {
			out = append(out, part)
		}
	}
	return out
}
