/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package httpcache

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/golfclub-teebot/internal"
)

func TestCachedClientServesRepeatsFromCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if ua := r.Header.Get("User-Agent"); ua != internal.UserAgent {
			t.Errorf("User-Agent = %q; want %q", ua, internal.UserAgent)
		}
		// origin asks not to be cached; the client overrides it
		w.Header().Set("Cache-Control", "no-store")
		w.Write([]byte("course list"))
	}))
	defer srv.Close()

	client := newCachedClient(httpcache.NewMemoryCache(), http.DefaultTransport,
		time.Hour)

	for i := 0; i < 3; i++ {
		resp, err := client.Get(srv.URL)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("Failed to read response body: %v", err)
		}
		if string(data) != "course list" {
			t.Errorf("body = %q", data)
		}
		if i > 0 && resp.Header.Get(httpcache.XFromCache) != "1" {
			t.Errorf("request %d not served from cache", i)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("origin hits = %d; want 1", got)
	}
}

func TestNewCachedHttpClientWithoutBucket(t *testing.T) {
	client := NewCachedHttpClient(context.Background(), "", time.Minute)
	if client == nil || client == http.DefaultClient {
		t.Fatal("expected a dedicated cached client")
	}
	if _, ok := client.Transport.(*httpcache.Transport); !ok {
		t.Errorf("transport = %T; want *httpcache.Transport", client.Transport)
	}
}
