package review

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeStore is a minimal Elasticsearch stand-in. Handlers are registered per
// path suffix; the last request body is kept for assertions.
type fakeStore struct {
	t   *testing.T
	srv *httptest.Server

	mu       sync.Mutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)
	lastBody string
}

func newFakeStore(t *testing.T) *fakeStore {
	t.Helper()
	f := &fakeStore{t: t, handlers: map[string]func(http.ResponseWriter, *http.Request){}}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.lastBody = string(body)
		var handler func(http.ResponseWriter, *http.Request)
		for suffix, h := range f.handlers {
			if strings.Contains(r.URL.Path, suffix) {
				handler = h
				break
			}
		}
		f.mu.Unlock()

		if handler == nil {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeStore) on(pathSuffix, response string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[pathSuffix] = func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(response))
	}
}

func (f *fakeStore) body() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastBody
}

func (f *fakeStore) repo(t *testing.T, dims int) *Repo {
	t.Helper()
	r, err := New(Config{
		Addrs:      []string{f.srv.URL},
		Index:      "hotel_reviews",
		VectorDims: dims,
		Timeout:    5 * time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

const searchResponse = `{
  "took": 2,
  "hits": {
    "total": {"value": 2, "relation": "eq"},
    "max_score": 3.2,
    "hits": [
      {
        "_index": "hotel_reviews",
        "_id": "review_0",
        "_score": 3.2,
        "_source": {
          "doc_id": "review_0",
          "hotel_name": "Grand Oslo",
          "location": "Oslo",
          "review_text": "quiet rooms and a lovely pool",
          "rating": 4.5,
          "tags": ["pool"]
        }
      },
      {
        "_index": "hotel_reviews",
        "_id": "review_1",
        "_score": 1.1,
        "_source": {
          "doc_id": "review_1",
          "hotel_name": "Plaza",
          "location": "Oslo",
          "review_text": "central but noisy",
          "rating": 3.9
        }
      }
    ]
  }
}`
