package suggest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aryannaik/lw-tagger/internal/vocab"
)

const promptTemplate = `
You are an expert at extracting relevant tags from content.
Analyze the following text and suggest tags from this approved list: %s

Guidelines:
- Only suggest tags that are EXACTLY in the approved list
- Be precise and selective
- Return tags as a comma-separated list
- Minimum 1 tag, Maximum %d tags

Text to analyze (len: %d):
%s...

Suggested Tags:`

// BuildPrompt renders the instruction sent to the model for text.
func BuildPrompt(text string, v *vocab.Vocabulary, excerptLen, maxTags int) string {
	return fmt.Sprintf(promptTemplate,
		strings.Join(v.Tags(), ", "),
		maxTags,
		utf8.RuneCountInString(text),
		excerpt(text, excerptLen),
	)
}

// excerpt returns the first n runes of s.
func excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
