package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wirewatch/config"
	"wirewatch/models"
)

const (
	titleLimit      = 80
	titleMinLength  = 10
	maxSources      = 5
	defaultTitle    = "Global Tensions Update"
	placeholderName = "Global Security Assessment"
)

var sourceDomainFilter = []string{
	"bbc.com", "reuters.com", "apnews.com", "cnn.com", "theguardian.com",
}

var defaultSources = []string{"Wire Intelligence", "Multiple News Sources"}

const systemPrompt = `You are a geopolitical intelligence analyst providing factual, well-sourced updates on global tensions and conflicts. Focus on verified information from credible sources.`

const updatePrompt = `Write a captivating 150 word update on the latest world news pertaining to rising global tensions. Cover the current state of the major flashpoints, what happened most recently, and what experts suggest may be still to come. Everything you say must be factual. Make the first part of the first sentence compelling enough that the reader wants to read more.`

// ContentFetcher calls the generative content provider and normalizes its
// response into an Update. In strict mode (the default) provider failures
// surface to the caller; degraded mode substitutes a placeholder update and
// is an explicit opt-in only.
type ContentFetcher struct {
	endpoint string
	model    string
	apiKey   string
	degraded bool
	client   *http.Client

	rotation atomic.Uint32
}

// NewContentFetcher builds a fetcher from provider configuration.
func NewContentFetcher(cfg config.ProviderConfig, degradedFallback bool) *ContentFetcher {
	return &ContentFetcher{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		degraded: degradedFallback,
		client:   &http.Client{Timeout: cfg.Timeout()},
	}
}

type providerMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type providerRequest struct {
	Model                  string            `json:"model"`
	Messages               []providerMessage `json:"messages"`
	MaxTokens              int               `json:"max_tokens"`
	Temperature            float64           `json:"temperature"`
	TopP                   float64           `json:"top_p"`
	ReturnCitations        bool              `json:"return_citations"`
	SearchDomainFilter     []string          `json:"search_domain_filter"`
	ReturnImages           bool              `json:"return_images"`
	ReturnRelatedQuestions bool              `json:"return_related_questions"`
	SearchRecencyFilter    string            `json:"search_recency_filter"`
	Stream                 bool              `json:"stream"`
	FrequencyPenalty       float64           `json:"frequency_penalty"`
}

type providerResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}

// Fetch produces a fresh Update. Calls are independent and never cached;
// concurrent calls are not deduplicated and the consumer keeps the last
// assigned result.
func (f *ContentFetcher) Fetch(ctx context.Context) (*models.Update, error) {
	if f.apiKey == "" {
		if f.degraded {
			log.Warn().Msg("fetcher: provider API key missing, serving placeholder")
			return f.placeholderUpdate(), nil
		}
		return nil, fmt.Errorf("%w: provider API key not configured", ErrConfigurationError)
	}

	content, citations, err := f.call(ctx)
	if err != nil {
		if f.degraded {
			log.Warn().Err(err).Msg("fetcher: provider call failed, serving placeholder")
			return f.placeholderUpdate(), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrContentUnavailable, err)
	}

	return &models.Update{
		ID:        "update_" + uuid.NewString(),
		Title:     extractTitle(content),
		Body:      content,
		CreatedAt: time.Now().UnixMilli(),
		Sources:   deriveSources(citations),
		Urgency:   ClassifyUrgency(content),
	}, nil
}

func (f *ContentFetcher) call(ctx context.Context) (string, []string, error) {
	body, err := json.Marshal(providerRequest{
		Model: f.model,
		Messages: []providerMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: updatePrompt},
		},
		MaxTokens:           200,
		Temperature:         0.8,
		TopP:                0.9,
		ReturnCitations:     true,
		SearchDomainFilter:  sourceDomainFilter,
		SearchRecencyFilter: "day",
		FrequencyPenalty:    1,
	})
	if err != nil {
		return "", nil, fmt.Errorf("marshal provider payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+f.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", nil, fmt.Errorf("provider %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	var pr providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", nil, fmt.Errorf("decode provider response: %w", err)
	}
	if len(pr.Choices) == 0 || strings.TrimSpace(pr.Choices[0].Message.Content) == "" {
		return "", nil, fmt.Errorf("empty provider response")
	}

	return pr.Choices[0].Message.Content, pr.Citations, nil
}

// extractTitle takes the text up to the first sentence terminator. Fragments
// over 80 characters are truncated at 77 plus an ellipsis; trivially short
// ones fall back to the default title.
func extractTitle(content string) string {
	fragment := content
	if idx := strings.IndexAny(content, ".!?"); idx >= 0 {
		fragment = content[:idx]
	}
	fragment = strings.TrimSpace(fragment)

	runes := []rune(fragment)
	if len(runes) < titleMinLength {
		return defaultTitle
	}
	if len(runes) > titleLimit {
		return string(runes[:titleLimit-3]) + "..."
	}
	return fragment
}

// deriveSources maps citations to display labels: URLs become their hostname
// with a leading www. stripped, anything else passes through verbatim. The
// list is capped at five entries and never empty.
func deriveSources(citations []string) []string {
	sources := make([]string, 0, len(citations))
	for _, citation := range citations {
		label := citation
		if u, err := neturl.Parse(citation); err == nil && u.Hostname() != "" {
			label = strings.TrimPrefix(u.Hostname(), "www.")
		}
		sources = append(sources, label)
		if len(sources) == maxSources {
			break
		}
	}

	if len(sources) == 0 {
		return append([]string(nil), defaultSources...)
	}
	return sources
}

var placeholderBodies = []string{
	"GLOBAL TENSION ALERT: Recent diplomatic communications reveal increased strain between major world powers. Military analysts report heightened activity across strategic regions as nations reassess their defense postures. Economic sanctions continue to impact global supply chains while cyber warfare incidents spike dramatically. Intelligence sources indicate growing concerns about nuclear deterrence stability. International peacekeeping efforts face unprecedented challenges as regional conflicts threaten to expand.",

	"ESCALATION WATCH: Military exercises by major powers intensify as diplomatic relations deteriorate across multiple fronts. Defense budgets surge globally while arms manufacturers report record demand. Cyber attacks on critical infrastructure multiply, targeting energy and communication systems. Trade wars escalate into broader economic warfare affecting global markets. Nuclear-capable nations increase readiness levels while peace negotiations stall.",

	"CRITICAL DEVELOPMENTS: Intelligence agencies report unprecedented coordination between adversarial nations as proxy conflicts multiply globally. Military buildups accelerate in contested regions while diplomatic channels show signs of complete breakdown. Nuclear rhetoric reaches dangerous levels as deterrence doctrines face real-world testing. Emergency protocols activate across multiple nations as the global security architecture faces its greatest test since 1945.",
}

// placeholderUpdate returns the next canned body from a fixed rotation, each
// independently classified for urgency.
func (f *ContentFetcher) placeholderUpdate() *models.Update {
	body := placeholderBodies[int(f.rotation.Add(1)-1)%len(placeholderBodies)]

	return &models.Update{
		ID:        "fallback_" + uuid.NewString(),
		Title:     placeholderName,
		Body:      body,
		CreatedAt: time.Now().UnixMilli(),
		Sources:   []string{"Intelligence Analysis", "Global Security Reports", "Defense News"},
		Urgency:   ClassifyUrgency(body),
	}
}
