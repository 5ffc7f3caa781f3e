/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mikeb26/boylstonchessclub-pairings/internal/httpcache"
)

const DefaultBaseURL = "https://ratings-api.uschess.org/api/v1"

type Client struct {
	baseURL         string
	httpClient30day *http.Client
	httpClient1day  *http.Client
	logger          *zap.Logger
}

// NewClient returns a ratings API client whose responses are cached in
// cacheBucket (or in memory when the bucket is unavailable).
func NewClient(ctx context.Context, logger *zap.Logger, cacheBucket string) *Client {
	return &Client{
		baseURL:         DefaultBaseURL,
		httpClient30day: httpcache.NewCachedHttpClient(ctx, logger, cacheBucket, 30*24*time.Hour),
		httpClient1day:  httpcache.NewCachedHttpClient(ctx, logger, cacheBucket, 24*time.Hour),
		logger:          logger,
	}
}
