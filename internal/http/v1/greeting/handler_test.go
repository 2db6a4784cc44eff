package greeting

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/janisto/greeting-api/internal/http/api"
	applog "github.com/janisto/greeting-api/internal/platform/logging"
	appmiddleware "github.com/janisto/greeting-api/internal/platform/middleware"
	"github.com/janisto/greeting-api/internal/platform/respond"
	greetingsvc "github.com/janisto/greeting-api/internal/service/greeting"
)

func newTestRouter() chi.Router {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	Register(api.New(router, api.NewConfig("GreetingTest", "test")), greetingsvc.NewCounterService())
	return router
}

func getGreeting(t *testing.T, router http.Handler, query string) Greeting {
	t.Helper()

	target := "/greeting"
	if query != "" {
		target += "?" + query
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("GET %s: expected 200, got %d: %s", target, resp.Code, resp.Body.String())
	}
	var g Greeting
	if err := json.Unmarshal(resp.Body.Bytes(), &g); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	return g
}

func TestGetFreshInstanceBody(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/greeting?name=Spring", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "greeting-fresh")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}
	if body := strings.TrimSpace(resp.Body.String()); body != `{"id":1,"content":"Hello, Spring"}` {
		t.Errorf("unexpected body %s", body)
	}
}

func TestGetBodyFieldTypes(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/greeting", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var raw map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &raw); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if len(raw) != 2 {
		t.Errorf("expected exactly id and content, got %v", raw)
	}
	id, ok := raw["id"].(float64)
	if !ok || id != float64(int64(id)) {
		t.Errorf("expected integer id, got %v (%T)", raw["id"], raw["id"])
	}
	if _, ok := raw["content"].(string); !ok {
		t.Errorf("expected string content, got %T", raw["content"])
	}
}

func TestGetDefaultsToWorld(t *testing.T) {
	router := newTestRouter()

	for _, query := range []string{"", "name=", "other=x"} {
		if g := getGreeting(t, router, query); g.Content != "Hello, World" {
			t.Errorf("query %q: expected 'Hello, World', got %q", query, g.Content)
		}
	}
}

func TestGetPassesNameVerbatim(t *testing.T) {
	router := newTestRouter()

	for _, name := range []string{"Alice", `<script>"x" & y</script>`, "Zoë 世界", " spaced "} {
		g := getGreeting(t, router, "name="+url.QueryEscape(name))
		if want := "Hello, " + name; g.Content != want {
			t.Errorf("expected %q, got %q", want, g.Content)
		}
	}
}

func TestGetSequentialIDs(t *testing.T) {
	router := newTestRouter()

	for want := int64(1); want <= 25; want++ {
		if g := getGreeting(t, router, "name=Alice"); g.ID != want {
			t.Fatalf("expected id %d, got %d", want, g.ID)
		}
	}
}

func TestGetConcurrentIDsAreUniqueAndGapless(t *testing.T) {
	const requests = 200
	router := newTestRouter()

	var (
		mu  sync.Mutex
		ids []int64
	)
	var g errgroup.Group
	g.SetLimit(16)
	for range requests {
		g.Go(func() error {
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/greeting?name=Bob", nil))
			var body Greeting
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				return err
			}
			mu.Lock()
			ids = append(ids, body.ID)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent request failed: %v", err)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) != requests {
		t.Fatalf("expected %d ids, got %d", requests, len(ids))
	}
	for i, id := range ids {
		if id != int64(i+1) {
			t.Fatalf("expected ids 1..%d, found %d at position %d", requests, id, i)
		}
	}
}

func TestGetCBOR(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/greeting?name=CBOR", nil)
	req.Header.Set("Accept", "application/cbor")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/cbor" {
		t.Errorf("expected application/cbor, got %s", ct)
	}
	var g Greeting
	if err := cbor.Unmarshal(resp.Body.Bytes(), &g); err != nil {
		t.Fatalf("cbor unmarshal: %v", err)
	}
	if g.ID != 1 || g.Content != "Hello, CBOR" {
		t.Errorf("unexpected greeting %+v", g)
	}
}

func TestGetLongNameIsNotLimited(t *testing.T) {
	router := newTestRouter()

	name := strings.Repeat("a", 5000)
	g := getGreeting(t, router, "name="+name)
	if g.ID != 1 {
		t.Errorf("expected id 1, got %d", g.ID)
	}
	if g.Content != "Hello, "+name {
		t.Errorf("expected long name to come back verbatim, got %d bytes", len(g.Content))
	}
}

func TestPostNotAllowed(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/greeting", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
	if allow := resp.Header().Get("Allow"); !strings.Contains(allow, http.MethodGet) {
		t.Errorf("expected Allow to list GET, got %q", allow)
	}
	var problem huma.ErrorModel
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if problem.Status != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", problem.Status)
	}

	// The rejected POST did not reach the counter.
	if g := getGreeting(t, router, ""); g.ID != 1 {
		t.Errorf("expected id 1 after rejected POST, got %d", g.ID)
	}
}
