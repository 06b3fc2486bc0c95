package assets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetch_Success(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Write(payload)
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, time.Second)
	got, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("body = %v, want %v", got, payload)
	}
}

func TestFetch_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, time.Second)
	_, err := f.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error on 404")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
	if fetchErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", fetchErr.StatusCode)
	}
}

func TestFetch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	f := NewFetcher(srv.URL, time.Second)
	_, err := f.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error on refused connection")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
	if fetchErr.StatusCode != 0 {
		t.Errorf("status = %d, want 0 for transport error", fetchErr.StatusCode)
	}
}

func TestNewFetcher_DefaultTimeout(t *testing.T) {
	f := NewFetcher("http://example.com/x.png", 0)
	if f.client.Timeout != DefaultFetchTimeout {
		t.Errorf("timeout = %v, want %v", f.client.Timeout, DefaultFetchTimeout)
	}
}
