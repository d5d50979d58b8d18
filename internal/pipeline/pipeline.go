// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline assembles search, profile, and citation lookups into
// ranked, bounded result sets. It drives a scholar.Source for raw records,
// normalizes them, runs the abstract enrichment chain, and sorts by citation
// count. Failures on individual records are logged and skipped so a single
// bad row never empties a result set.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/time/rate"

	"github.com/meshintel/scholar-engine/internal/enrich"
	"github.com/meshintel/scholar-engine/internal/scholar"
	"github.com/meshintel/scholar-engine/pkg/types"
)

// DefaultOverfetchFactor is how many times count candidate publications a
// profile lookup gathers before ranking, so that highly cited papers deep in
// the profile listing still make the cut.
const DefaultOverfetchFactor = 2

// Pipeline coordinates a publication source and an enrichment chain. All
// lookups are paced by a shared rate limiter so consecutive requests to the
// source keep a polite interval.
type Pipeline struct {
	source scholar.Source
	chain  *enrich.Chain
	cfg    types.ScholarConfig
	pace   *rate.Limiter
	w      io.Writer
}

// New builds a pipeline over source and chain. Diagnostics are written to w.
func New(source scholar.Source, chain *enrich.Chain, cfg types.ScholarConfig, w io.Writer) *Pipeline {
	if w == nil {
		w = io.Discard
	}
	if cfg.OverfetchFactor <= 0 {
		cfg.OverfetchFactor = DefaultOverfetchFactor
	}
	limit := rate.Inf
	if cfg.PacingDelay > 0 {
		limit = rate.Every(cfg.PacingDelay)
	}
	return &Pipeline{
		source: source,
		chain:  chain,
		cfg:    cfg,
		pace:   rate.NewLimiter(limit, 1),
		w:      w,
	}
}

// Search runs a keyword query and returns up to count papers sorted by
// citation count, most cited first. Source failures yield an empty slice;
// the only error returned is context cancellation.
func (p *Pipeline) Search(ctx context.Context, query string, count int) ([]types.Paper, error) {
	if count <= 0 {
		return nil, nil
	}
	stream, err := p.source.Search(ctx, query)
	if err != nil {
		p.warnf("search %q failed: %v", query, err)
		return []types.Paper{}, nil
	}
	papers, err := p.collect(ctx, stream, count)
	if err != nil {
		return nil, err
	}
	rankPapers(papers)
	return papers, nil
}

// collect drains up to count successfully processed records from stream.
// Records that fail to process are skipped without consuming the limit.
func (p *Pipeline) collect(ctx context.Context, stream scholar.Stream, count int) ([]types.Paper, error) {
	papers := make([]types.Paper, 0, count)
	for len(papers) < count {
		if err := p.pace.Wait(ctx); err != nil {
			return nil, err
		}
		rec, err := stream.Next(ctx)
		if errors.Is(err, scholar.ErrExhausted) {
			break
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.warnf("result stream failed: %v", err)
			break
		}
		papers = append(papers, p.process(ctx, rec))
	}
	return papers, nil
}

// process turns one raw record into an output paper.
func (p *Pipeline) process(ctx context.Context, rec *scholar.PubRecord) types.Paper {
	paper := Normalize(rec)
	if p.chain != nil {
		paper = p.chain.Enrich(ctx, paper)
	}
	return paper
}

// Profile returns up to count of an author's most cited publications. An
// unknown profile ID yields an empty slice, not an error.
func (p *Pipeline) Profile(ctx context.Context, profileID string, count int) ([]types.Paper, error) {
	if count <= 0 {
		return nil, nil
	}
	author, err := p.source.ResolveAuthor(ctx, profileID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.warnf("profile %q failed: %v", profileID, err)
		return []types.Paper{}, nil
	}
	if author == nil {
		p.warnf("profile %q not found", profileID)
		return []types.Paper{}, nil
	}

	// Profile listings are ordered by the source, not by citations. Fill
	// a multiple of count candidates so ranking has something to choose
	// from, then keep the top count.
	candidates := author.Publications
	if n := count * p.cfg.OverfetchFactor; len(candidates) > n {
		candidates = candidates[:n]
	}
	papers := make([]types.Paper, 0, len(candidates))
	for _, rec := range candidates {
		if err := p.pace.Wait(ctx); err != nil {
			return nil, err
		}
		filled, err := p.source.FillPublication(ctx, rec)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.warnf("filling %q failed: %v", rec.Bib.Title, err)
			continue
		}
		papers = append(papers, p.process(ctx, filled))
	}
	rankPapers(papers)
	if len(papers) > count {
		papers = papers[:count]
	}
	return papers, nil
}

// References returns up to count papers that cite the given paper, most
// cited first. The paper is named either by a citations cluster ID or by a
// profile-style compound ID.
func (p *Pipeline) References(ctx context.Context, paperID string, count int) ([]types.Paper, error) {
	return p.Search(ctx, referencesQuery(paperID), count)
}

// referencesQuery builds the query that lists papers citing paperID.
// Compound IDs of the form user:view carry no cluster, so those fall back
// to a citation search by ID text.
func referencesQuery(paperID string) string {
	if strings.Contains(paperID, ":") {
		return "cite:" + paperID
	}
	return "cites=" + paperID
}

// PaperDetail fetches full metadata for a single paper. It returns
// (nil, nil) when no paper matches the ID.
func (p *Pipeline) PaperDetail(ctx context.Context, paperID string) (*types.Paper, error) {
	query := "cluster:" + paperID
	if strings.Contains(paperID, ":") {
		query = "source:" + paperID
	}
	stream, err := p.source.Search(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.warnf("paper %q failed: %v", paperID, err)
		return nil, nil
	}
	rec, err := stream.Next(ctx)
	if errors.Is(err, scholar.ErrExhausted) {
		return nil, nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.warnf("paper %q failed: %v", paperID, err)
		return nil, nil
	}
	if filled, err := p.source.FillPublication(ctx, rec); err == nil {
		rec = filled
	} else {
		p.warnf("filling %q failed: %v", rec.Bib.Title, err)
	}
	paper := p.process(ctx, rec)
	return &paper, nil
}

// rankPapers sorts in place by citation count, most cited first. The sort is
// stable so equally cited papers keep their source order.
func rankPapers(papers []types.Paper) {
	sort.SliceStable(papers, func(i, j int) bool {
		return papers[i].Citations > papers[j].Citations
	})
}

func (p *Pipeline) warnf(format string, args ...any) {
	fmt.Fprintf(p.w, "warning: "+format+"\n", args...)
}
