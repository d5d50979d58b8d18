// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich backfills incomplete paper abstracts from secondary
// bibliographic sources. Providers are tried in a fixed priority order
// and the chain stops at the first one that improves on the abstract the
// primary source gave.
package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/meshintel/scholar-engine/pkg/types"
)

// DefaultProviderTimeout bounds one provider call when the config gives none.
const DefaultProviderTimeout = 10 * time.Second

// Provider attempts to find a more complete abstract for a paper.
// Implementations return "" when they have nothing to contribute; any
// error is treated the same way by the chain.
type Provider interface {
	Name() string
	TryEnrich(ctx context.Context, p types.Paper) (string, error)
}

// Chain tries an ordered list of providers against one paper at a time.
type Chain struct {
	providers []Provider
	timeout   time.Duration
	w         io.Writer
}

// NewChain builds a chain over the given providers in priority order.
// Absorbed provider failures are reported on w.
func NewChain(w io.Writer, timeout time.Duration, providers ...Provider) *Chain {
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	return &Chain{providers: providers, timeout: timeout, w: w}
}

// NewDefaultChain wires the production provider order: Semantic Scholar's
// bibliographic graph, then Crossref, then Unpaywall (DOI-gated).
func NewDefaultChain(client *http.Client, cfg types.EnrichConfig, w io.Writer) *Chain {
	return NewChain(w, cfg.ProviderTimeout,
		&SemanticScholarProvider{Client: client, APIKey: cfg.SemanticScholarAPIKey, UserAgent: cfg.UserAgent},
		&CrossrefProvider{Client: client, UserAgent: cfg.UserAgent},
		&UnpaywallProvider{Client: client, Email: cfg.UnpaywallEmail, UserAgent: cfg.UserAgent},
	)
}

// Enrich returns p with the best-known abstract. The first provider whose
// result is strictly longer than p's current abstract wins and gives the
// abstract its provenance; if none improves on it, p comes back unchanged
// with no provenance set. A paper without a title triggers no lookups.
func (c *Chain) Enrich(ctx context.Context, p types.Paper) types.Paper {
	if p.Title == "" || p.Title == types.UnknownTitle {
		return p
	}

	for _, prov := range c.providers {
		pctx, cancel := context.WithTimeout(ctx, c.timeout)
		abstract, err := prov.TryEnrich(pctx, p)
		cancel()
		if err != nil {
			fmt.Fprintf(c.w, "warning: enrichment provider %s: %v\n", prov.Name(), err)
			continue
		}
		if len(abstract) > len(p.Abstract) {
			p.Abstract = abstract
			p.AbstractSource = prov.Name()
			return p
		}
	}
	return p
}
