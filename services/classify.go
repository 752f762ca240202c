package services

import (
	"strings"

	"wirewatch/models"
)

// Urgency keyword sets, evaluated most severe first. The first set with any
// phrase present in the lower-cased text wins.
var urgencyKeywords = []struct {
	level    models.Urgency
	keywords []string
}{
	{models.UrgencyCritical, []string{
		"nuclear strike", "war declared", "nato article 5", "invasion",
		"missile launch", "emergency protocols",
	}},
	{models.UrgencyHigh, []string{
		"military buildup", "conflict escalation", "defense alert",
		"crisis level", "cyber attack", "sanctions war",
	}},
	{models.UrgencyMedium, []string{
		"diplomatic tension", "military exercise", "trade war",
		"arms buildup", "alliance strain", "security concern",
	}},
	{models.UrgencyLow, []string{
		"diplomatic talks", "peace initiative", "cooperation",
		"stability", "negotiations", "agreement",
	}},
}

// ClassifyUrgency maps free text to a severity level. Matching is
// case-insensitive and deterministic. Unmatched text defaults to medium,
// not low; downstream severity indicators rely on that exact default.
func ClassifyUrgency(text string) models.Urgency {
	lower := strings.ToLower(text)

	for _, set := range urgencyKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				return set.level
			}
		}
	}

	return models.UrgencyMedium
}
