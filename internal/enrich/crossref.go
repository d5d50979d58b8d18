// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/meshintel/scholar-engine/internal/httputil"
	"github.com/meshintel/scholar-engine/pkg/types"
)

// crossrefWorksBase is the Crossref works search endpoint. Declared as a
// var so tests can substitute an httptest server.
var crossrefWorksBase = "https://api.crossref.org/works"

// CrossrefProvider queries the Crossref citation registry by title and
// takes the abstract of the top hit. Crossref abstracts arrive as JATS
// XML fragments, so the markup is stripped before use.
type CrossrefProvider struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the provenance label for this provider.
func (p *CrossrefProvider) Name() string { return "Crossref" }

// TryEnrich returns the registry's abstract for the paper, or "" when
// the title has no hit or the hit carries no abstract.
func (p *CrossrefProvider) TryEnrich(ctx context.Context, paper types.Paper) (string, error) {
	params := url.Values{
		"query.title": {paper.Title},
		"rows":        {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, crossrefWorksBase+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return "", fmt.Errorf("Crossref API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("parsing Crossref response: %w", err)
	}
	if len(cr.Message.Items) == 0 {
		return "", nil
	}
	return StripMarkup(cr.Message.Items[0].Abstract), nil
}

// StripMarkup removes XML/HTML tags from an abstract fragment, returning
// the trimmed text content. Malformed input comes back unchanged.
func StripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}

// Crossref API JSON structures.
type crossrefResponse struct {
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	Items []crossrefWork `json:"items"`
}

type crossrefWork struct {
	Title    []string `json:"title"`
	Abstract string   `json:"abstract"`
	DOI      string   `json:"DOI"`
}
