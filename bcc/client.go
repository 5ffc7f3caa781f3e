/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package bcc reads Boylston Chess Club event registrations and turns them
// into round-1 tournaments the pairing engine can pair.
package bcc

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mikeb26/boylstonchessclub-pairings/internal/httpcache"
)

const (
	DefaultAPIBaseURL = "https://beta.boylstonchess.org/api"
	DefaultWebBaseURL = "https://boylstonchess.org"
)

type Client struct {
	apiBaseURL string
	webBaseURL string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient returns a club client whose responses are cached in cacheBucket
// for maxAge.
func NewClient(ctx context.Context, logger *zap.Logger, cacheBucket string,
	maxAge time.Duration) *Client {

	return &Client{
		apiBaseURL: DefaultAPIBaseURL,
		webBaseURL: DefaultWebBaseURL,
		httpClient: httpcache.NewCachedHttpClient(ctx, logger, cacheBucket, maxAge),
		logger:     logger,
	}
}
