package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPreviewShortFirstSentence(t *testing.T) {
	got := SplitPreview("Short. More detail follows.")

	assert.Equal(t, "Short...", got.Preview)
	assert.Equal(t, " More detail follows.", got.Remainder)
}

func TestSplitPreviewLongFirstSentence(t *testing.T) {
	body := "The quick brown fox jumps over the lazy dog while the world watches in disbelief. A second sentence follows."
	got := SplitPreview(body)

	require.True(t, strings.HasSuffix(got.Preview, "..."))
	raw := strings.TrimSuffix(got.Preview, "...")

	// Bounded, word-boundary truncated, and present verbatim in the body.
	assert.LessOrEqual(t, len(raw), 50)
	assert.Contains(t, body, raw)
	assert.Equal(t, "The quick brown fox jumps over the lazy dog while", raw)

	// Nothing invented: preview text plus remainder is reachable from body.
	assert.True(t, strings.HasSuffix(body, got.Remainder))
	assert.Equal(t, body, raw+got.Remainder)
}

func TestSplitPreviewNeverSplitsWords(t *testing.T) {
	bodies := []string{
		"Intercontinental negotiations collapsed spectacularly overnight amid recriminations. Detail.",
		"One two three four five six seven eight nine ten eleven twelve thirteen fourteen.",
		"Tiny. Rest.",
	}

	for _, body := range bodies {
		got := SplitPreview(body)
		raw := strings.TrimSuffix(got.Preview, "...")
		assert.LessOrEqual(t, len(raw), 50, "body %q", body)

		idx := strings.Index(body, raw)
		require.GreaterOrEqual(t, idx, 0, "body %q", body)

		// The character after the preview must be a word boundary.
		after := body[idx+len(raw):]
		if after != "" {
			assert.Contains(t, []byte{'.', ' '}, after[0], "body %q", body)
		}
	}
}

func TestSplitPreviewEmptyBody(t *testing.T) {
	got := SplitPreview("")
	assert.Equal(t, "", got.Preview)
	assert.Equal(t, "", got.Remainder)

	got = SplitPreview("   ")
	assert.Equal(t, "", got.Preview)
	assert.Equal(t, "", got.Remainder)
}

func TestSplitPreviewDeterministic(t *testing.T) {
	body := "Global markets reel as sanctions bite deeper than expected. Analysts warn of worse to come."
	first := SplitPreview(body)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, SplitPreview(body))
	}
}
