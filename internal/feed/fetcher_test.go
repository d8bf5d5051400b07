package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

const feedDoc = `<Root><Urunler><Urun><UrunKartiID>1</UrunKartiID></Urun></Urunler></Root>`

// hitCounter records how many times each path was requested.
type hitCounter struct {
	mu   sync.Mutex
	hits map[string]int
}

func newHitCounter() *hitCounter {
	return &hitCounter{hits: make(map[string]int)}
}

func (h *hitCounter) inc(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits[path]++
}

func (h *hitCounter) get(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hits[path]
}

func TestFetch_FallbackOrder(t *testing.T) {
	counter := newHitCounter()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.inc(r.URL.Path)
		switch r.URL.Path {
		case "/eski":
			http.NotFound(w, r)
		case "/guncel":
			w.Write([]byte(feedDoc))
		default:
			w.Write([]byte(feedDoc))
		}
	}))
	defer srv.Close()

	urls := []string{srv.URL + "/eski", srv.URL + "/guncel", srv.URL + "/yedek"}
	f := New(srv.Client(), urls, 5*time.Second, 0, nil)

	body, source, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if string(body) != feedDoc {
		t.Errorf("body = %q", body)
	}
	if source != urls[1] {
		t.Errorf("source = %q, want %q", source, urls[1])
	}
	if counter.get("/yedek") != 0 {
		t.Error("later candidate was requested after a success")
	}
}

func TestFetch_EmptyBodyTriggersFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bos" {
			w.Write([]byte("   \n"))
			return
		}
		w.Write([]byte(feedDoc))
	}))
	defer srv.Close()

	urls := []string{srv.URL + "/bos", srv.URL + "/dolu"}
	f := New(srv.Client(), urls, 5*time.Second, 0, nil)

	_, source, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if source != urls[1] {
		t.Errorf("source = %q, want %q", source, urls[1])
	}
}

func TestFetch_AllSourcesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := New(srv.Client(), []string{srv.URL + "/a", srv.URL + "/b"}, 5*time.Second, 0, nil)

	_, _, err := f.Fetch(context.Background())
	if !errors.Is(err, ErrAllSourcesFailed) {
		t.Fatalf("Fetch error = %v, want ErrAllSourcesFailed", err)
	}
}

func TestFetch_NoURLsConfigured(t *testing.T) {
	f := New(http.DefaultClient, nil, 5*time.Second, 0, nil)

	_, _, err := f.Fetch(context.Background())
	if !errors.Is(err, ErrAllSourcesFailed) {
		t.Fatalf("Fetch error = %v, want ErrAllSourcesFailed", err)
	}
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := New(srv.Client(), []string{srv.URL + "/a", srv.URL + "/b"}, 5*time.Second, 0, nil)
	_, _, err := f.Fetch(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Fetch error = %v, want context.Canceled", err)
	}
}
