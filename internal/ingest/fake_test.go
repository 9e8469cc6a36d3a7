package ingest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/FlagBrew/local-dex/internal/models"
)

// fakeAPI serves listings and detail documents shaped like the remote
// source.
type fakeAPI struct {
	srv *httptest.Server

	mu       sync.Mutex
	lists    map[string][]models.NamedResource
	details  map[string][]byte
	fail     map[string]int
	hits     map[string]int
	delay    time.Duration
	inflight int
	peak     int
}

func newFakeAPI(t testing.TB) *fakeAPI {
	t.Helper()

	f := &fakeAPI{
		lists:   map[string][]models.NamedResource{},
		details: map[string][]byte{},
		fail:    map[string]int{},
		hits:    map[string]int{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) URL() string {
	return f.srv.URL
}

func (f *fakeAPI) detailPath(endpoint string, id int) string {
	return fmt.Sprintf("/%s/%d/", endpoint, id)
}

// add lists id under endpoint. A nil payload is listed but has no detail.
func (f *fakeAPI) add(endpoint string, id int, name string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.detailPath(endpoint, id)
	f.lists[endpoint] = append(f.lists[endpoint], models.NamedResource{Name: name, URL: f.srv.URL + path})
	if payload == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	f.details[path] = b
}

func (f *fakeAPI) raw(path string, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.details[path] = []byte(body)
}

func (f *fakeAPI) failPath(path string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[path] = code
}

func (f *fakeAPI) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeAPI) peakInflight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.peak
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.inflight++
	if f.inflight > f.peak {
		f.peak = f.inflight
	}
	code, failing := f.fail[r.URL.Path]
	delay := f.delay
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inflight--
		f.mu.Unlock()
	}()

	if delay > 0 {
		time.Sleep(delay)
	}
	if failing {
		http.Error(w, "unavailable", code)
		return
	}

	endpoint := strings.Trim(r.URL.Path, "/")
	f.mu.Lock()
	list, isList := f.lists[endpoint]
	body, isDetail := f.details[r.URL.Path]
	f.mu.Unlock()

	switch {
	case isList:
		f.serveList(w, r, endpoint, list)
	case isDetail:
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeAPI) serveList(w http.ResponseWriter, r *http.Request, endpoint string, list []models.NamedResource) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}

	end := min(offset+limit, len(list))
	page := models.ResourceList{Count: len(list), Results: []models.NamedResource{}}
	if offset < len(list) {
		page.Results = list[offset:end]
	}
	if end < len(list) {
		next := fmt.Sprintf("%s/%s?offset=%d&limit=%d", f.srv.URL, endpoint, end, limit)
		page.Next = &next
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(page)
}

func testFetcher(api *fakeAPI, maxConcurrency, pageSize int, opts ...FetcherOption) *Fetcher {
	return NewFetcher(models.IngestConfig{
		BaseURL:        api.URL(),
		UserAgent:      "local-dex-test",
		MaxConcurrency: maxConcurrency,
		PageSize:       pageSize,
		RequestTimeout: 5,
	}, opts...)
}

func ptr[T any](v T) *T { return &v }

func ref(api *fakeAPI, endpoint string, id int, name string) *models.NamedResource {
	return &models.NamedResource{Name: name, URL: api.URL() + api.detailPath(endpoint, id)}
}
