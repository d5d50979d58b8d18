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

// unpaywallBase is the Unpaywall DOI resolver endpoint. Declared as a
// var so tests can substitute an httptest server.
var unpaywallBase = "https://api.unpaywall.org/v2/"

// defaultUnpaywallEmail is sent when no contact address is configured;
// Unpaywall rejects requests without an email parameter.
const defaultUnpaywallEmail = "scholar-engine@example.com"

// UnpaywallProvider resolves open-access records by DOI. It is only
// attempted for papers that carry one; all others pass through without a
// network call.
type UnpaywallProvider struct {
	Client    *http.Client
	Email     string
	UserAgent string
}

// Name returns the provenance label for this provider.
func (p *UnpaywallProvider) Name() string { return "Unpaywall" }

// TryEnrich returns the open-access record's abstract for the paper's
// DOI, or "" when the paper has no DOI or the record carries no abstract.
func (p *UnpaywallProvider) TryEnrich(ctx context.Context, paper types.Paper) (string, error) {
	if paper.DOI == "" {
		return "", nil
	}

	email := p.Email
	if email == "" {
		email = defaultUnpaywallEmail
	}
	reqURL := unpaywallBase + url.PathEscape(paper.DOI) + "?email=" + url.QueryEscape(email)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return "", fmt.Errorf("Unpaywall API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Unpaywall API returned HTTP %d", resp.StatusCode)
	}

	var record unpaywallRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return "", fmt.Errorf("parsing Unpaywall response: %w", err)
	}
	return record.Abstract, nil
}

// Unpaywall API JSON structure.
type unpaywallRecord struct {
	DOI      string `json:"doi"`
	Abstract string `json:"abstract"`
	IsOA     bool   `json:"is_oa"`
}
