// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"strings"

	"github.com/meshintel/scholar-engine/internal/scholar"
	"github.com/meshintel/scholar-engine/pkg/types"
)

// Normalize maps a raw publication record onto the output shape, filling
// placeholder values for any field the source page did not carry. It never
// fails: a record with every field missing still yields a well-formed paper.
func Normalize(rec *scholar.PubRecord) types.Paper {
	p := types.Paper{
		Title:     strings.TrimSpace(rec.Bib.Title),
		Abstract:  strings.TrimSpace(rec.Bib.Abstract),
		Year:      strings.TrimSpace(rec.Bib.PubYear),
		Venue:     strings.TrimSpace(rec.Bib.Venue),
		Citations: rec.NumCitations,
		DOI:       rec.DOI,
		URL:       rec.PubURL,
	}
	if p.Title == "" {
		p.Title = types.UnknownTitle
	}
	if p.Abstract == "" {
		p.Abstract = types.NoAbstract
	}
	if p.Year == "" {
		p.Year = types.UnknownYear
	}
	if p.Citations < 0 {
		p.Citations = 0
	}
	p.Authors = joinAuthors(rec.Bib.Authors)
	p.PaperID = scholar.ExtractPaperID(rec.PubURL)
	if rec.CitesID != "" {
		p.CitationURL, _ = citationsURL(rec.CitesID)
	}
	return p
}

func joinAuthors(authors []string) string {
	kept := authors[:0:0]
	for _, a := range authors {
		if a = strings.TrimSpace(a); a != "" {
			kept = append(kept, a)
		}
	}
	return strings.Join(kept, ", ")
}

func citationsURL(citesID string) (string, bool) {
	if citesID == "" {
		return "", false
	}
	return scholar.DefaultBaseURL + "/scholar?cites=" + citesID, true
}
