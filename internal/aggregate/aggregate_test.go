package aggregate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aitiwari/aisearch/internal/search"
)

func pageWithParagraphs(paragraphs ...string) string {
	var b strings.Builder
	b.WriteString("<html><head><title>t</title><style>p{}</style></head><body><script>var x=1;</script><nav>menu</nav>")
	for _, p := range paragraphs {
		fmt.Fprintf(&b, "<p>%s</p>", p)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func TestAggregateExtractsParagraphText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, pageWithParagraphs("first paragraph", "second paragraph"))
	}))
	defer srv.Close()

	combined, outcomes := New(nil).Aggregate(context.Background(),
		[]search.SearchResult{{URL: srv.URL}})
	if combined != "first paragraph second paragraph" {
		t.Fatalf("unexpected content: %q", combined)
	}
	if len(outcomes) != 1 || outcomes[0].Skipped {
		t.Fatalf("unexpected outcomes: %#v", outcomes)
	}
	if strings.Contains(combined, "var x=1") || strings.Contains(combined, "menu") {
		t.Fatalf("non-paragraph content leaked: %q", combined)
	}
}

func TestAggregateSkipsFailedFetches(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, pageWithParagraphs("useful text"))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer bad.Close()

	combined, outcomes := New(nil).Aggregate(context.Background(), []search.SearchResult{
		{URL: bad.URL},
		{URL: "http://127.0.0.1:1/unreachable"},
		{URL: good.URL},
	})
	if combined != "useful text" {
		t.Fatalf("unexpected content: %q", combined)
	}
	if Fetched(outcomes) != 1 {
		t.Fatalf("expected 1 fetched, got %d", Fetched(outcomes))
	}
	if !outcomes[0].Skipped || !outcomes[1].Skipped || outcomes[2].Skipped {
		t.Fatalf("unexpected outcomes: %#v", outcomes)
	}
}

func TestAggregateAllFailedReturnsEmptyString(t *testing.T) {
	combined, outcomes := New(nil).Aggregate(context.Background(),
		[]search.SearchResult{{URL: "http://127.0.0.1:1/nope"}})
	if combined != "" {
		t.Fatalf("expected empty string, got %q", combined)
	}
	if Fetched(outcomes) != 0 {
		t.Fatalf("expected 0 fetched")
	}
}

func TestAggregateEnforcesLimits(t *testing.T) {
	long := strings.Repeat("x", 5000)
	var servers []*httptest.Server
	for i := 0; i < 8; i++ {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, pageWithParagraphs(long))
		}))
		servers = append(servers, srv)
	}
	defer func() {
		for _, srv := range servers {
			srv.Close()
		}
	}()

	var results []search.SearchResult
	for _, srv := range servers {
		results = append(results, search.SearchResult{URL: srv.URL})
	}

	combined, outcomes := New(nil).Aggregate(context.Background(), results)
	if len(combined) > TotalLimit {
		t.Fatalf("total limit exceeded: %d", len(combined))
	}
	for _, o := range outcomes {
		if len(o.Text) > PerPageLimit {
			t.Fatalf("per-page limit exceeded: %d", len(o.Text))
		}
	}
}

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	s := strings.Repeat("é", PerPageLimit) // 2 bytes per rune
	got := truncate(s, PerPageLimit)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8")
	}
	if len(got) != PerPageLimit {
		t.Fatalf("expected cut at %d bytes, got %d", PerPageLimit, len(got))
	}

	got = truncate(s, PerPageLimit+1) // lands mid-rune, must back up
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune")
	}
	if len(got) != PerPageLimit {
		t.Fatalf("expected backup to %d bytes, got %d", PerPageLimit, len(got))
	}
}

func TestAggregateRespectsURLValidator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("validator did not block the fetch")
	}))
	defer srv.Close()

	blockAll := func(string) error { return fmt.Errorf("blocked") }
	combined, outcomes := New(blockAll).Aggregate(context.Background(),
		[]search.SearchResult{{URL: srv.URL}})
	if combined != "" {
		t.Fatalf("expected empty content")
	}
	if len(outcomes) != 1 || !outcomes[0].Skipped {
		t.Fatalf("expected skip outcome: %#v", outcomes)
	}
}

func TestProbeImagesKeepsOnlyReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		if strings.HasPrefix(r.URL.Path, "/missing") {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	images := []search.ImageResult{
		{Title: "a", ImageURL: srv.URL + "/a.jpg"},
		{Title: "gone", ImageURL: srv.URL + "/missing.jpg"},
		{Title: "b", ImageURL: srv.URL + "/b.jpg"},
		{Title: "dead", ImageURL: "http://127.0.0.1:1/dead.jpg"},
	}
	valid := New(nil).ProbeImages(context.Background(), images)
	if len(valid) != 2 {
		t.Fatalf("expected 2 valid images, got %d", len(valid))
	}
	if valid[0].Title != "a" || valid[1].Title != "b" {
		t.Fatalf("order not preserved: %#v", valid)
	}
}
