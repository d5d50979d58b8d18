// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/meshintel/scholar-engine/internal/httputil"
	"github.com/meshintel/scholar-engine/pkg/types"
)

// Semantic Scholar graph API endpoints. Declared as vars so tests can
// substitute an httptest server.
var (
	semanticSearchBase = "https://api.semanticscholar.org/graph/v1/paper/search"
	semanticPaperBase  = "https://api.semanticscholar.org/graph/v1/paper/"
)

const semanticDetailFields = "title,abstract,authors,year,citationCount,venue"

// SemanticScholarProvider looks the paper up in the Semantic Scholar
// bibliographic graph by exact title, takes the single best hit, and
// fetches its full metadata by internal id.
type SemanticScholarProvider struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// Name returns the provenance label for this provider.
func (p *SemanticScholarProvider) Name() string { return "Semantic Scholar" }

// TryEnrich returns the graph's abstract for the paper, or "" when the
// title has no hit or the hit carries no abstract.
func (p *SemanticScholarProvider) TryEnrich(ctx context.Context, paper types.Paper) (string, error) {
	params := url.Values{
		"query": {paper.Title},
		"limit": {"1"},
	}

	var sr semanticSearchResponse
	if err := p.getJSON(ctx, semanticSearchBase+"?"+params.Encode(), &sr); err != nil {
		return "", err
	}
	if len(sr.Data) == 0 {
		return "", nil
	}

	detailURL := semanticPaperBase + url.PathEscape(sr.Data[0].PaperID) + "?fields=" + semanticDetailFields
	var detail semanticPaperDetail
	if err := p.getJSON(ctx, detailURL, &detail); err != nil {
		return "", err
	}
	return detail.Abstract, nil
}

func (p *SemanticScholarProvider) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)
	if p.APIKey != "" {
		req.Header.Set("x-api-key", p.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}
	return nil
}

// Semantic Scholar API JSON structures.
type semanticSearchResponse struct {
	Total int                 `json:"total"`
	Data  []semanticSearchHit `json:"data"`
}

type semanticSearchHit struct {
	PaperID string `json:"paperId"`
	Title   string `json:"title"`
}

type semanticPaperDetail struct {
	PaperID       string `json:"paperId"`
	Title         string `json:"title"`
	Abstract      string `json:"abstract"`
	Year          int    `json:"year"`
	CitationCount int    `json:"citationCount"`
	Venue         string `json:"venue"`
}
