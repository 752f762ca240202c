package services

import (
	"wirewatch/models"
)

const visibleSourceCap = 3

// Viewer is the entitlement state of whoever is looking at an update.
type Viewer struct {
	Authenticated bool
	Subscribed    bool
}

// RenderedUpdate is what a given viewer may see of an update. When access is
// denied, Locked carries the remainder for blurred, non-interactive display;
// it still reaches the client and is not confidential.
type RenderedUpdate struct {
	ID           string         `json:"id,omitempty"`
	Title        string         `json:"title"`
	Urgency      models.Urgency `json:"urgency"`
	CreatedAt    int64          `json:"created_at,omitempty"`
	FullAccess   bool           `json:"full_access"`
	Shown        string         `json:"shown"`
	Locked       string         `json:"locked,omitempty"`
	Sources      []string       `json:"sources"`
	SourcesShown []string       `json:"sources_shown"`
	SourcesMore  int            `json:"sources_more"`
}

// CanViewFull decides full-body access. Access requires authentication AND a
// currently active subscription; a signed-in viewer without one sees the same
// paywall as an anonymous viewer. (An earlier variant of this product granted
// access to any signed-in account; that behavior is intentionally not kept.)
func CanViewFull(v Viewer) bool {
	return v.Authenticated && v.Subscribed
}

// SelectRenderedText combines an update with a viewer's entitlement. Full
// access exposes the whole body, the source list, and item metadata; anything
// less gets the free preview plus the locked remainder and no sources.
func SelectRenderedText(update *models.Update, v Viewer) RenderedUpdate {
	if update == nil {
		return RenderedUpdate{}
	}

	if !CanViewFull(v) {
		excerpt := SplitPreview(update.Body)
		return RenderedUpdate{
			Title:        update.Title,
			Urgency:      update.Urgency,
			Shown:        excerpt.Preview,
			Locked:       excerpt.Remainder,
			Sources:      []string{},
			SourcesShown: []string{},
		}
	}

	shown := update.Sources
	more := 0
	if len(shown) > visibleSourceCap {
		more = len(shown) - visibleSourceCap
		shown = shown[:visibleSourceCap]
	}

	return RenderedUpdate{
		ID:           update.ID,
		Title:        update.Title,
		Urgency:      update.Urgency,
		CreatedAt:    update.CreatedAt,
		FullAccess:   true,
		Shown:        update.Body,
		Sources:      update.Sources,
		SourcesShown: shown,
		SourcesMore:  more,
	}
}
