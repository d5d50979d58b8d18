// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar retrieves raw publication records from Google Scholar.
// It exposes the publication source as a lazy record stream plus author
// resolution, and derives stable identifiers from Scholar URL shapes.
package scholar

import (
	"context"
	"errors"
)

// ErrExhausted signals that a publication stream has no further records.
// It is distinct from a transport error: an exhausted stream is a normal
// end-of-results condition.
var ErrExhausted = errors.New("scholar: stream exhausted")

// Bib holds the nested bibliographic fields of one raw record. Fields may
// be empty; the pipeline's normalizer applies placeholder defaults.
type Bib struct {
	Title    string
	Authors  []string
	Abstract string
	PubYear  string
	Venue    string
}

// PubRecord is one unnormalized publication as returned by the source.
type PubRecord struct {
	Bib          Bib
	NumCitations int

	// PubURL is the paper's public page. For profile publications it is
	// the citation-view URL used by FillPublication.
	PubURL string

	// CitesID is the cluster identifier behind the "cited by" link,
	// empty when the source shows none.
	CitesID string

	// DOI is recovered from the paper's public URL when it points at a
	// doi.org resolver; Scholar pages expose no DOI field of their own.
	DOI string

	// Filled reports whether the record carries full detail-page data.
	Filled bool
}

// Author is a resolved Scholar profile with its publication list.
type Author struct {
	ID           string
	Name         string
	Affiliation  string
	Publications []*PubRecord
}

// Stream produces raw publication records one at a time. Next returns
// ErrExhausted when the upstream source has no more records.
type Stream interface {
	Next(ctx context.Context) (*PubRecord, error)
}

// Source is the publication search and listing capability the pipeline
// consumes. Implementations must signal exhaustion via ErrExhausted and
// report a missing author as (nil, nil), not as an error.
type Source interface {
	// Search returns a lazy stream of raw records for the query. The
	// query may carry the special forms "cites=<id>" (works citing a
	// cluster) and "cluster:<id>" (versions of a cluster).
	Search(ctx context.Context, query string) (Stream, error)

	// ResolveAuthor looks up a Scholar profile by id. A profile that does
	// not exist yields (nil, nil).
	ResolveAuthor(ctx context.Context, profileID string) (*Author, error)

	// FillPublication completes a shallow publication record with
	// detail-page data (full abstract, venue, citation count).
	FillPublication(ctx context.Context, rec *PubRecord) (*PubRecord, error)
}
