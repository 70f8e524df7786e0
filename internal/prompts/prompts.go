package prompts

import (
	_ "embed"
	"fmt"
	"strings"
)

// ProfileExamples is the few-shot block placed in front of every profile
// request. Each example ends with the stop sequence on its own line.
//
//go:embed profile_examples.txt
var ProfileExamples string

const (
	// MaxHighlights is the number of highlight fields offered by the form
	MaxHighlights = 4

	// StopSequence separates the examples and ends a completion
	StopSequence = "##"

	profileSuffix = "\nProfile:"
)

// BuildProfilePrompt constructs the full completion prompt for a role
// and its highlights. Empty highlights are skipped but keep their
// position: the number shown is always the original index plus one.
// Inputs are not escaped, so text containing the stop sequence is passed
// through as is.
func BuildProfilePrompt(role string, highlights []string) string {
	var b strings.Builder

	b.WriteString(ProfileExamples)
	fmt.Fprintf(&b, "Write a winning %s incorporating the following features:\n", role)

	for _, line := range NumberedHighlights(highlights) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(profileSuffix)
	return b.String()
}

// NumberedHighlights returns the numbered lines the prompt will contain,
// useful for previews.
func NumberedHighlights(highlights []string) []string {
	var lines []string
	for i, h := range highlights {
		if h == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, h))
	}
	return lines
}
