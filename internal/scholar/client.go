// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/meshintel/scholar-engine/internal/httputil"
)

const (
	// DefaultBaseURL is the Google Scholar endpoint.
	DefaultBaseURL = "https://scholar.google.com"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// resultsPerPage is the number of records Scholar serves per search page.
	resultsPerPage = 10

	// profilePageSize is the number of publications requested per profile page.
	profilePageSize = 100
)

// yearPattern finds a four-digit publication year in a result byline.
var yearPattern = regexp.MustCompile(`\b(\d{4})\b`)

// citedByPattern extracts the count from a "Cited by N" link.
var citedByPattern = regexp.MustCompile(`Cited by (\d+)`)

// Client scrapes Google Scholar result and profile pages. It implements
// Source. Scholar has no JSON API; records come from parsed HTML, so any
// field may be missing and the caller must default-on-absence.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(base string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(base, "/") }
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a Google Scholar client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		userAgent:  "scholar-engine/0.1",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search fetches the first result page eagerly so that an unreachable
// upstream surfaces here rather than on the first Next call, and returns
// a stream over the remaining pages.
func (c *Client) Search(ctx context.Context, query string) (Stream, error) {
	params := url.Values{"hl": {"en"}}
	switch {
	case strings.HasPrefix(query, "cites="):
		params.Set("cites", strings.TrimPrefix(query, "cites="))
	case strings.HasPrefix(query, "cluster:"):
		params.Set("cluster", strings.TrimPrefix(query, "cluster:"))
	default:
		params.Set("q", query)
	}

	s := &pageStream{c: c, params: params}
	if err := s.fetchPage(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// pageStream walks Scholar search result pages lazily.
type pageStream struct {
	c      *Client
	params url.Values
	buf    []*PubRecord
	start  int
	done   bool
}

// Next returns the next raw record, fetching further pages on demand.
func (s *pageStream) Next(ctx context.Context) (*PubRecord, error) {
	if len(s.buf) == 0 && !s.done {
		if err := s.fetchPage(ctx); err != nil {
			return nil, err
		}
	}
	if len(s.buf) == 0 {
		return nil, ErrExhausted
	}
	rec := s.buf[0]
	s.buf = s.buf[1:]
	return rec, nil
}

func (s *pageStream) fetchPage(ctx context.Context) error {
	params := url.Values{}
	for k, v := range s.params {
		params[k] = v
	}
	if s.start > 0 {
		params.Set("start", strconv.Itoa(s.start))
	}

	doc, err := s.c.fetchDocument(ctx, "/scholar?"+params.Encode())
	if err != nil {
		return err
	}

	recs := parseResultPage(doc)
	s.buf = append(s.buf, recs...)
	s.start += resultsPerPage
	// A short page means Scholar has nothing further.
	if len(recs) < resultsPerPage {
		s.done = true
	}
	return nil
}

// ResolveAuthor fetches a Scholar profile page and its publication table.
// A profile Scholar does not know yields (nil, nil).
func (c *Client) ResolveAuthor(ctx context.Context, profileID string) (*Author, error) {
	params := url.Values{
		"user":     {profileID},
		"hl":       {"en"},
		"cstart":   {"0"},
		"pagesize": {strconv.Itoa(profilePageSize)},
	}

	doc, err := c.fetchDocument(ctx, "/citations?"+params.Encode())
	if err != nil {
		if errors404(err) {
			return nil, nil
		}
		return nil, err
	}

	name := strings.TrimSpace(doc.Find("#gsc_prf_in").Text())
	if name == "" {
		// Scholar serves an error page, not a 404, for unknown ids.
		return nil, nil
	}

	author := &Author{
		ID:          profileID,
		Name:        name,
		Affiliation: strings.TrimSpace(doc.Find(".gsc_prf_il").First().Text()),
	}

	doc.Find("tr.gsc_a_tr").Each(func(_ int, row *goquery.Selection) {
		titleLink := row.Find("a.gsc_a_at").First()
		rec := &PubRecord{
			Bib: Bib{Title: strings.TrimSpace(titleLink.Text())},
		}
		if href, ok := titleLink.Attr("href"); ok {
			rec.PubURL = c.absoluteURL(href)
		}

		gray := row.Find(".gs_gray")
		if gray.Length() > 0 {
			rec.Bib.Authors = splitAuthors(gray.Eq(0).Text())
		}
		if gray.Length() > 1 {
			rec.Bib.Venue = strings.TrimSpace(gray.Eq(1).Text())
		}

		if n, err := strconv.Atoi(strings.TrimSpace(row.Find("td.gsc_a_c a").First().Text())); err == nil {
			rec.NumCitations = n
		}
		rec.Bib.PubYear = strings.TrimSpace(row.Find("td.gsc_a_y span").First().Text())

		author.Publications = append(author.Publications, rec)
	})

	return author, nil
}

// FillPublication fetches the citation-view detail page for a shallow
// profile record. Records that already carry detail data pass through.
func (c *Client) FillPublication(ctx context.Context, rec *PubRecord) (*PubRecord, error) {
	if rec.Filled {
		return rec, nil
	}
	if rec.PubURL == "" {
		return nil, fmt.Errorf("publication %q has no detail URL", rec.Bib.Title)
	}

	doc, err := c.fetchDocument(ctx, pathOf(rec.PubURL))
	if err != nil {
		return nil, err
	}

	filled := &PubRecord{
		PubURL: rec.PubURL,
		Filled: true,
		Bib:    Bib{Title: strings.TrimSpace(doc.Find("#gsc_oci_title").Text())},
	}
	if filled.Bib.Title == "" {
		filled.Bib.Title = rec.Bib.Title
	}

	doc.Find("#gsc_oci_table div.gs_scl").Each(func(_ int, row *goquery.Selection) {
		field := strings.TrimSpace(row.Find(".gsc_oci_field").Text())
		value := row.Find(".gsc_oci_value")
		switch field {
		case "Authors":
			filled.Bib.Authors = splitAuthors(value.Text())
		case "Publication date":
			date := strings.TrimSpace(value.Text())
			if m := yearPattern.FindString(date); m != "" {
				filled.Bib.PubYear = m
			}
		case "Journal", "Conference", "Book", "Source":
			filled.Bib.Venue = strings.TrimSpace(value.Text())
		case "Description":
			filled.Bib.Abstract = strings.TrimSpace(value.Text())
		case "Total citations":
			link := value.Find("a").First()
			if m := citedByPattern.FindStringSubmatch(link.Text()); m != nil {
				filled.NumCitations, _ = strconv.Atoi(m[1])
			}
			if href, ok := link.Attr("href"); ok {
				filled.CitesID = extractCitesID(href)
			}
		}
	})

	if filled.Bib.PubYear == "" {
		filled.Bib.PubYear = rec.Bib.PubYear
	}
	if filled.NumCitations == 0 {
		filled.NumCitations = rec.NumCitations
	}
	return filled, nil
}

// fetchDocument GETs path under the base URL and parses the body.
func (c *Client) fetchDocument(ctx context.Context, path string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, 0)
	if err != nil {
		return nil, fmt.Errorf("scholar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing scholar page: %w", err)
	}
	return doc, nil
}

// parseResultPage extracts raw records from a search result page.
func parseResultPage(doc *goquery.Document) []*PubRecord {
	var recs []*PubRecord
	doc.Find("div.gs_r.gs_or").Each(func(_ int, row *goquery.Selection) {
		rec := parseResultRow(row)
		if rec.Bib.Title == "" {
			return
		}
		recs = append(recs, rec)
	})
	return recs
}

func parseResultRow(row *goquery.Selection) *PubRecord {
	rec := &PubRecord{}

	titleLink := row.Find("h3.gs_rt a").First()
	if titleLink.Length() > 0 {
		rec.Bib.Title = strings.TrimSpace(titleLink.Text())
		rec.PubURL, _ = titleLink.Attr("href")
		rec.DOI = ExtractDOI(rec.PubURL)
	} else {
		// Citation-only entries have no link; strip the [CITATION] tag.
		title := row.Find("h3.gs_rt").Text()
		title = strings.TrimSpace(strings.TrimPrefix(title, "[CITATION][C]"))
		rec.Bib.Title = title
	}

	parseByline(row.Find("div.gs_a").Text(), rec)
	rec.Bib.Abstract = strings.TrimSpace(row.Find("div.gs_rs").Text())

	row.Find("div.gs_fl a").Each(func(_ int, link *goquery.Selection) {
		m := citedByPattern.FindStringSubmatch(link.Text())
		if m == nil {
			return
		}
		rec.NumCitations, _ = strconv.Atoi(m[1])
		if href, ok := link.Attr("href"); ok {
			rec.CitesID = extractCitesID(href)
		}
	})

	return rec
}

// parseByline splits the green author line, e.g.
// "A Vaswani, N Shazeer - Advances in neural information…, 2017 - nips.cc".
func parseByline(byline string, rec *PubRecord) {
	parts := strings.Split(byline, " - ")
	if len(parts) == 0 {
		return
	}
	rec.Bib.Authors = splitAuthors(parts[0])
	if len(parts) < 2 {
		return
	}
	venuePart := strings.TrimSpace(parts[1])
	if m := yearPattern.FindString(venuePart); m != "" {
		rec.Bib.PubYear = m
		venuePart = strings.TrimSuffix(venuePart, m)
	}
	rec.Bib.Venue = strings.Trim(venuePart, " ,…")
}

func splitAuthors(s string) []string {
	var authors []string
	for _, a := range strings.Split(s, ",") {
		a = strings.TrimSpace(strings.Trim(strings.TrimSpace(a), "…"))
		if a != "" && a != "…" {
			authors = append(authors, a)
		}
	}
	return authors
}

// absoluteURL resolves profile-relative hrefs against the base URL.
func (c *Client) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return c.baseURL + href
}

// pathOf strips the scheme and host so detail URLs recorded from one
// base (production or a test server) are refetched under the client's.
func pathOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if u.RawQuery == "" {
		return u.Path
	}
	return u.Path + "?" + u.RawQuery
}

// statusError reports a non-200 response from Scholar.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("scholar returned HTTP %d", e.code)
}

func errors404(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.code == http.StatusNotFound
}
