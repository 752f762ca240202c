package services

import (
	"strings"
)

const previewLimit = 50

// Excerpt is the free-to-view slice of an update body plus the paywalled
// remainder. The remainder still travels to the client for blurred display;
// it is not confidential.
type Excerpt struct {
	Preview   string
	Remainder string
}

// SplitPreview derives a bounded free excerpt from a body. The preview is the
// first sentence, word-boundary truncated to 50 characters, with a literal
// "..." suffix. The remainder is everything in the body after the preview
// text, with the consumed sentence terminator dropped. An empty body yields
// an empty excerpt.
func SplitPreview(body string) Excerpt {
	if strings.TrimSpace(body) == "" {
		return Excerpt{}
	}

	first := strings.TrimSpace(strings.SplitN(body, ".", 2)[0])

	preview := first
	if len(first) > previewLimit {
		preview = ""
		for _, word := range strings.Split(first, " ") {
			if len(preview)+1+len(word) > previewLimit {
				break
			}
			if preview != "" {
				preview += " "
			}
			preview += word
		}
	}

	remainder := ""
	if idx := strings.Index(body, preview); idx >= 0 {
		rest := body[idx+len(preview):]
		// Consume the sentence terminator the preview stopped at.
		rest = strings.TrimPrefix(rest, ".")
		remainder = rest
	}

	return Excerpt{Preview: preview + "...", Remainder: remainder}
}
