// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scholar-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ScholarConfig holds settings for the publication source and the
// orchestrator loop.
type ScholarConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the default number of papers returned per request.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// PacingDelay is the mandatory wait between successive upstream
	// fetches. Google Scholar is queried unauthenticated; the delay keeps
	// the crawl under its implicit rate limit (default 1s).
	PacingDelay time.Duration `json:"pacing_delay" yaml:"pacing_delay"`

	// OverfetchFactor is the candidate multiplier for profile requests:
	// up to OverfetchFactor×count publications are detail-fetched to
	// compensate for candidates whose fetch fails (default 2). The final
	// output length is still bounded by count.
	OverfetchFactor int `json:"overfetch_factor" yaml:"overfetch_factor"`
}

// EnrichConfig holds settings for the abstract enrichment chain.
type EnrichConfig struct {
	HTTPConfig `yaml:",inline"`

	// ProviderTimeout bounds each individual provider call (default 10s).
	ProviderTimeout time.Duration `json:"provider_timeout" yaml:"provider_timeout"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// UnpaywallEmail is the contact address Unpaywall requires on every
	// request. A placeholder address is used when empty.
	UnpaywallEmail string `json:"unpaywall_email,omitempty" yaml:"unpaywall_email,omitempty"`
}
