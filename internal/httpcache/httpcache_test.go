/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package httpcache

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeb26/boylstonchessclub-pairings/internal"
)

func TestHttpClient(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
		r *http.Request) {
		hits.Add(1)
		w.Header().Set("Cache-Control", "no-store")
		fmt.Fprintf(w, "crosstable %v", r.URL.Query().Get("id"))
	}))
	defer srv.Close()

	client := NewClient(httpcache.NewMemoryCache(), http.DefaultTransport,
		5*time.Minute)
	url := srv.URL + "/xtbl?id=12912297"

	for i := 0; i < 3; i++ {
		req, err := http.NewRequest("GET", url, nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", internal.UserAgent)
		resp, err := client.Do(req)
		require.NoError(t, err)
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, "crosstable 12912297", string(data))
		if i > 0 {
			assert.Equal(t, "1", resp.Header.Get("X-From-Cache"), "object not cached")
		}
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestHeaderOverrideTransportRequestHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
		r *http.Request) {
		io.WriteString(w, r.Header.Get("User-Agent"))
	}))
	defer srv.Close()

	rt := &HeaderOverrideTransport{
		wrappedRT: http.DefaultTransport,
		Request: func(req *http.Request) {
			req.Header.Set("User-Agent", internal.UserAgent)
		},
	}
	req, err := http.NewRequest("GET", srv.URL, nil)
	require.NoError(t, err)
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, internal.UserAgent, string(data))
	assert.Empty(t, req.Header.Get("User-Agent"), "caller's request untouched")
}
