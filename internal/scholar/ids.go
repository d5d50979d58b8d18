// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"net/url"
	"strings"
)

// URL parameter markers carrying embedded identifiers.
const (
	citationViewMarker = "citation_for_view="
	clusterMarker      = "cluster="
	citesMarker        = "cites="
	profileMarker      = "user="
)

// markerIndex returns the offset of the first occurrence of marker that
// starts a parameter: at the beginning of s or right after '?' or '&'.
// A marker embedded in a longer name (e.g. "edu_user=") does not count.
func markerIndex(s, marker string) int {
	for from := 0; ; {
		i := strings.Index(s[from:], marker)
		if i < 0 {
			return -1
		}
		i += from
		if i == 0 || s[i-1] == '?' || s[i-1] == '&' {
			return i
		}
		from = i + len(marker)
	}
}

// paramAfter returns the value of the first occurrence of the marker
// parameter, cut at the next '&'.
func paramAfter(s, marker string) (string, bool) {
	i := markerIndex(s, marker)
	if i < 0 {
		return "", false
	}
	v := s[i+len(marker):]
	if j := strings.IndexByte(v, '&'); j >= 0 {
		v = v[:j]
	}
	return v, true
}

// ExtractPaperID derives a stable paper identifier from a Scholar URL.
// Profile citation-view URLs are checked first and keep the full URL
// remainder; then cluster URLs, whose value stops at the first '&'.
// Returns "" when the URL carries neither shape.
func ExtractPaperID(pubURL string) string {
	if i := markerIndex(pubURL, citationViewMarker); i >= 0 {
		return pubURL[i+len(citationViewMarker):]
	}
	if id, ok := paramAfter(pubURL, clusterMarker); ok {
		return id
	}
	return ""
}

// extractCitesID pulls the cluster id out of a "cited by" link's cites
// query parameter.
func extractCitesID(href string) string {
	id, _ := paramAfter(href, citesMarker)
	return id
}

// ExtractProfileID pulls the scholar id out of a profile URL's "user"
// query parameter. Returns "" when the parameter is absent; callers must
// treat "" as extraction failure, not as a valid id.
func ExtractProfileID(profileURL string) string {
	id, _ := paramAfter(profileURL, profileMarker)
	return id
}

// ExtractDOI derives a DOI from a paper's public URL when it points at a
// doi.org resolver. Scholar exposes no DOI field of its own, so resolver
// links are the only place one can be recovered. Returns "" for any
// other host or a path that is not a DOI.
func ExtractDOI(pubURL string) string {
	u, err := url.Parse(pubURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "doi.org" && host != "dx.doi.org" {
		return ""
	}
	doi := strings.TrimPrefix(u.Path, "/")
	if !strings.HasPrefix(doi, "10.") {
		return ""
	}
	return doi
}
