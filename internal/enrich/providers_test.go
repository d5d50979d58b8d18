// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meshintel/scholar-engine/pkg/types"
)

func TestSemanticScholarProvider(t *testing.T) {
	var searchCalls, detailCalls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/search"):
			searchCalls++
			if got := r.URL.Query().Get("query"); got != "Attention is all you need" {
				t.Errorf("query param = %q", got)
			}
			if got := r.URL.Query().Get("limit"); got != "1" {
				t.Errorf("limit param = %q, want 1", got)
			}
			fmt.Fprint(w, `{"total":1,"data":[{"paperId":"649def34","title":"Attention is all you need"}]}`)
		default:
			detailCalls++
			if !strings.Contains(r.URL.Path, "649def34") {
				t.Errorf("detail path = %q, want the hit's paper id", r.URL.Path)
			}
			fmt.Fprint(w, `{"paperId":"649def34","abstract":"The dominant sequence transduction models are based on complex recurrent or convolutional neural networks."}`)
		}
	}))
	defer ts.Close()

	oldSearch, oldPaper := semanticSearchBase, semanticPaperBase
	semanticSearchBase = ts.URL + "/search"
	semanticPaperBase = ts.URL + "/paper/"
	defer func() { semanticSearchBase, semanticPaperBase = oldSearch, oldPaper }()

	p := &SemanticScholarProvider{Client: ts.Client(), APIKey: "test-key"}
	abstract, err := p.TryEnrich(context.Background(), types.Paper{Title: "Attention is all you need"})
	if err != nil {
		t.Fatalf("TryEnrich: %v", err)
	}
	if !strings.HasPrefix(abstract, "The dominant sequence") {
		t.Errorf("abstract = %q", abstract)
	}
	if searchCalls != 1 || detailCalls != 1 {
		t.Errorf("calls = %d search, %d detail; want 1 each", searchCalls, detailCalls)
	}
}

func TestSemanticScholarProviderNoHit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"total":0,"data":[]}`)
	}))
	defer ts.Close()

	old := semanticSearchBase
	semanticSearchBase = ts.URL
	defer func() { semanticSearchBase = old }()

	p := &SemanticScholarProvider{Client: ts.Client()}
	abstract, err := p.TryEnrich(context.Background(), types.Paper{Title: "does not exist"})
	if err != nil {
		t.Fatalf("TryEnrich: %v", err)
	}
	if abstract != "" {
		t.Errorf("abstract = %q, want empty", abstract)
	}
}

func TestSemanticScholarProviderHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	old := semanticSearchBase
	semanticSearchBase = ts.URL
	defer func() { semanticSearchBase = old }()

	p := &SemanticScholarProvider{Client: ts.Client()}
	if _, err := p.TryEnrich(context.Background(), types.Paper{Title: "x"}); err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}

func TestCrossrefProviderStripsJATSMarkup(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query.title"); got != "Some paper" {
			t.Errorf("query.title param = %q", got)
		}
		if got := r.URL.Query().Get("rows"); got != "1" {
			t.Errorf("rows param = %q, want 1", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"message":{"items":[{"title":["Some paper"],"abstract":"<jats:p>An abstract wrapped in JATS markup.</jats:p>"}]}}`)
	}))
	defer ts.Close()

	old := crossrefWorksBase
	crossrefWorksBase = ts.URL
	defer func() { crossrefWorksBase = old }()

	p := &CrossrefProvider{Client: ts.Client()}
	abstract, err := p.TryEnrich(context.Background(), types.Paper{Title: "Some paper"})
	if err != nil {
		t.Fatalf("TryEnrich: %v", err)
	}
	if abstract != "An abstract wrapped in JATS markup." {
		t.Errorf("abstract = %q", abstract)
	}
}

func TestCrossrefProviderEmptyResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"message":{"items":[]}}`)
	}))
	defer ts.Close()

	old := crossrefWorksBase
	crossrefWorksBase = ts.URL
	defer func() { crossrefWorksBase = old }()

	p := &CrossrefProvider{Client: ts.Client()}
	abstract, err := p.TryEnrich(context.Background(), types.Paper{Title: "x"})
	if err != nil {
		t.Fatalf("TryEnrich: %v", err)
	}
	if abstract != "" {
		t.Errorf("abstract = %q, want empty", abstract)
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"jats paragraph", "<jats:p>Plain text.</jats:p>", "Plain text."},
		{"nested tags", "<jats:sec><jats:title>Background</jats:title><jats:p>Body text.</jats:p></jats:sec>", "BackgroundBody text."},
		{"no markup", "  already plain  ", "already plain"},
		{"html tags", "<p>Hello <b>world</b></p>", "Hello world"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkup(tt.in); got != tt.want {
				t.Errorf("StripMarkup(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnpaywallProvider(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.URL.Query().Get("email"); got == "" {
			t.Error("email param missing")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"doi":"10.1000/test","is_oa":true,"abstract":"An open-access abstract."}`)
	}))
	defer ts.Close()

	old := unpaywallBase
	unpaywallBase = ts.URL + "/"
	defer func() { unpaywallBase = old }()

	p := &UnpaywallProvider{Client: ts.Client(), Email: "me@example.com"}
	abstract, err := p.TryEnrich(context.Background(), types.Paper{Title: "x", DOI: "10.1000/test"})
	if err != nil {
		t.Fatalf("TryEnrich: %v", err)
	}
	if abstract != "An open-access abstract." {
		t.Errorf("abstract = %q", abstract)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestUnpaywallProviderSkipsWithoutDOI(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("unexpected request for paper without DOI")
	}))
	defer ts.Close()

	old := unpaywallBase
	unpaywallBase = ts.URL + "/"
	defer func() { unpaywallBase = old }()

	p := &UnpaywallProvider{Client: ts.Client()}
	abstract, err := p.TryEnrich(context.Background(), types.Paper{Title: "x"})
	if err != nil {
		t.Fatalf("TryEnrich: %v", err)
	}
	if abstract != "" {
		t.Errorf("abstract = %q, want empty", abstract)
	}
}
