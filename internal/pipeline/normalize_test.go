// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meshintel/scholar-engine/internal/scholar"
	"github.com/meshintel/scholar-engine/pkg/types"
)

func TestNormalizeDefaults(t *testing.T) {
	p := Normalize(&scholar.PubRecord{})
	assert.Equal(t, types.UnknownTitle, p.Title)
	assert.Equal(t, types.NoAbstract, p.Abstract)
	assert.Equal(t, types.UnknownYear, p.Year)
	assert.Equal(t, 0, p.Citations)
	assert.Equal(t, "", p.Authors)
}

func TestNormalizeKeepsPresentFields(t *testing.T) {
	rec := &scholar.PubRecord{
		Bib: scholar.Bib{
			Title:    "Deep learning",
			Authors:  []string{"Y LeCun", "Y Bengio", "G Hinton"},
			Abstract: "A survey.",
			PubYear:  "2015",
			Venue:    "Nature",
		},
		NumCitations: 42,
		PubURL:       "https://scholar.google.com/citations?view_op=view_citation&citation_for_view=ABC123",
		CitesID:      "555",
		DOI:          "10.1038/nature14539",
	}
	p := Normalize(rec)
	assert.Equal(t, "Deep learning", p.Title)
	assert.Equal(t, "Y LeCun, Y Bengio, G Hinton", p.Authors)
	assert.Equal(t, "A survey.", p.Abstract)
	assert.Equal(t, "2015", p.Year)
	assert.Equal(t, "Nature", p.Venue)
	assert.Equal(t, 42, p.Citations)
	assert.Equal(t, "10.1038/nature14539", p.DOI)
	assert.Equal(t, "ABC123", p.PaperID)
	assert.Contains(t, p.CitationURL, "cites=555")
}

func TestNormalizeClampsNegativeCitations(t *testing.T) {
	p := Normalize(&scholar.PubRecord{NumCitations: -3})
	assert.Equal(t, 0, p.Citations)
}

func TestNormalizeDropsBlankAuthors(t *testing.T) {
	rec := &scholar.PubRecord{Bib: scholar.Bib{Authors: []string{" A One ", "", "B Two"}}}
	p := Normalize(rec)
	assert.Equal(t, "A One, B Two", p.Authors)
}

func TestNormalizeWhitespaceOnlyFields(t *testing.T) {
	rec := &scholar.PubRecord{Bib: scholar.Bib{Title: "   ", PubYear: " "}}
	p := Normalize(rec)
	assert.Equal(t, types.UnknownTitle, p.Title)
	assert.Equal(t, types.UnknownYear, p.Year)
}
