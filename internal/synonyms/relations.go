package synonyms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// HTTPRelationSource queries a Datamuse-compatible lexical-relations API
// (GET {base}/words?rel_syn=<word>&max=N). Responses are cached for the
// lifetime of the source so repeated builds yield identical groups.
type HTTPRelationSource struct {
	baseURL string
	client  *http.Client

	mu    sync.Mutex
	cache map[string][]string
}

// NewHTTPRelationSource creates a relation source against baseURL.
func NewHTTPRelationSource(baseURL string, timeout time.Duration) *HTTPRelationSource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPRelationSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		cache:   make(map[string][]string),
	}
}

// Synonyms implements RelationSource.
func (s *HTTPRelationSource) Synonyms(ctx context.Context, word string) ([]string, error) {
	s.mu.Lock()
	cached, ok := s.cache[word]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	reqURL := fmt.Sprintf("%s/words?rel_syn=%s&max=%d",
		s.baseURL, url.QueryEscape(word), maxRelationSynonyms)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build relations request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relations lookup %q: %w", word, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("relations lookup %q: status %d", word, resp.StatusCode)
	}

	var entries []struct {
		Word string `json:"word"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode relations response: %w", err)
	}

	words := make([]string, 0, len(entries))
	for _, e := range entries {
		words = append(words, e.Word)
	}

	s.mu.Lock()
	s.cache[word] = words
	s.mu.Unlock()
	return words, nil
}
