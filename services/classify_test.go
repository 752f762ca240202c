package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wirewatch/models"
)

func TestClassifyUrgency(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.Urgency
	}{
		{
			name: "nato article 5 is critical",
			text: "Tensions rise as NATO Article 5 invoked. More detail follows.",
			want: models.UrgencyCritical,
		},
		{
			name: "cyber attack is high",
			text: "A major cyber attack hit infrastructure overnight.",
			want: models.UrgencyHigh,
		},
		{
			name: "trade war is medium",
			text: "The trade war between the two blocs deepened today.",
			want: models.UrgencyMedium,
		},
		{
			name: "peace initiative is low",
			text: "A new peace initiative was announced in Geneva.",
			want: models.UrgencyLow,
		},
		{
			name: "unmatched text defaults to medium, not low",
			text: "Markets were quiet today with little movement anywhere.",
			want: models.UrgencyMedium,
		},
		{
			name: "empty text defaults to medium",
			text: "",
			want: models.UrgencyMedium,
		},
		{
			name: "matching is case-insensitive",
			text: "MISSILE LAUNCH detected over the peninsula",
			want: models.UrgencyCritical,
		},
		{
			name: "most severe set wins regardless of position",
			text: "Negotiations and cooperation continue despite the invasion.",
			want: models.UrgencyCritical,
		},
		{
			name: "high beats medium when both match",
			text: "Diplomatic tension rises after the cyber attack.",
			want: models.UrgencyHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyUrgency(tt.text))
		})
	}
}

func TestClassifyUrgencyDeterministic(t *testing.T) {
	text := "Military buildup reported near the border as negotiations stall."
	first := ClassifyUrgency(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ClassifyUrgency(text))
	}
}

func TestClassifyUrgencyAlwaysReturnsKnownLevel(t *testing.T) {
	levels := map[models.Urgency]bool{
		models.UrgencyLow:      true,
		models.UrgencyMedium:   true,
		models.UrgencyHigh:     true,
		models.UrgencyCritical: true,
	}

	inputs := []string{
		"", "a", "invasion", "stability and cooperation", "何かのニュース",
		"nuclear strike and peace initiative in one sentence",
	}
	for _, in := range inputs {
		assert.True(t, levels[ClassifyUrgency(in)], "input %q", in)
	}
}
