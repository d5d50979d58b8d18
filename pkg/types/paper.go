// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholar-engine pipeline.
package types

// Placeholder values used when a source omits a bibliographic field.
const (
	UnknownTitle = "unknown title"
	NoAbstract   = "no abstract"
	UnknownYear  = "unknown year"
)

// Paper is the canonical publication record emitted by the pipeline.
// Every retrieval path normalizes into this shape before ranking.
// A Paper is immutable once returned to the caller; enrichment happens
// before emission.
type Paper struct {
	// Title is the paper title, or UnknownTitle when the source omits it.
	Title string `json:"title" yaml:"title"`

	// Authors is the comma-joined author list, empty when unknown.
	Authors string `json:"authors" yaml:"authors"`

	// Abstract is the best-known abstract text, or NoAbstract when unknown.
	Abstract string `json:"abstract" yaml:"abstract"`

	// AbstractSource names the enrichment provider that supplied the
	// current abstract. Empty when the abstract came from the primary
	// source unmodified.
	AbstractSource string `json:"abstract_source,omitempty" yaml:"abstract_source,omitempty"`

	// Citations is the citation count. Always non-negative; it is the
	// sole ranking key and defaults to 0 when unknown.
	Citations int `json:"citations" yaml:"citations"`

	// Year is the publication year as free-form text (not all sources
	// give a clean numeric year), or UnknownYear when unknown.
	Year string `json:"year" yaml:"year"`

	// Venue is the journal or conference name, possibly empty.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// DOI is set only when the primary source supplies one.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// PaperID is the identifier derived from the paper's public URL,
	// empty when it cannot be derived.
	PaperID string `json:"paper_id,omitempty" yaml:"paper_id,omitempty"`

	// URL is the paper's public page, when known.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// CitationURL links to the list of works citing this paper. Set only
	// by detail lookups.
	CitationURL string `json:"citation_url,omitempty" yaml:"citation_url,omitempty"`
}
