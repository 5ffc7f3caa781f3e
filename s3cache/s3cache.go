/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache stores and retrieves blobs using Amazon S3. A Cache
 * satisfies httpcache.Cache for HTTP response caching and also offers
 * error-returning Put/Fetch/Remove/List calls used for tournament storage.
 * It is based on the original github.com/sourcegraph/s3cache but updated to
 * use aws-sdk-go-v2.
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

const gzipSuffix = ".gz"

// Cache objects store and retrieve data using Amazon S3.
type Cache struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is the s3 client the cache should used when interacting with S3.
	// By default this is initialized in Init() with the default Config, but
	// callers can optionally override this with their own s3 client if desired.
	Client *s3.Client

	// KeyFunc maps a cache key to an object key. The default hashes the key
	// under /s3cache/.
	KeyFunc func(key string) string

	bucketName string

	// gzip indicates whether cache entries should be gzipped on write and
	// gunzipped on read. If true, object keys have the suffix ".gz".
	gzip bool

	logger *zap.Logger

	// ctx is used by the httpcache.Cache methods, which take no context
	ctx context.Context
}

// New returns a new Cache with underlying storage in the specified Amazon S3
// bucket. Additionally, specify whether objects persisted in the cache should
// be compressed with gzip or not. Callers should take care to invoke Init() on
// the returned Cache object before use. A nil logger discards errors.
func New(ctx context.Context, bucketName string, gzip bool,
	logger *zap.Logger) *Cache {

	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		KeyFunc:    HashedKey,
		ctx:        ctx,
		bucketName: bucketName,
		gzip:       gzip,
		logger:     logger.With(zap.String("bucket", bucketName)),
	}
}

// HashedKey is the default KeyFunc.
func HashedKey(key string) string {
	const PathPrefix = "s3cache"

	h := md5.New()
	io.WriteString(h, key)
	return fmt.Sprintf("/%v/%v", PathPrefix, hex.EncodeToString(h.Sum(nil)))
}

// PrefixedKey returns a KeyFunc that keeps keys readable under prefix.
func PrefixedKey(prefix string) func(string) string {
	prefix = strings.Trim(prefix, "/")
	return func(key string) string {
		if prefix == "" {
			return key
		}
		return prefix + "/" + key
	}
}

func (c *Cache) objectKey(key string) string {
	objKey := c.KeyFunc(key)
	if c.gzip {
		objKey += gzipSuffix
	}
	return objKey
}

// Fetch returns the stored data for key. A missing object is reported as
// found == false with a nil error.
func (c *Cache) Fetch(ctx context.Context, key string) ([]byte, bool, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.objectKey(key)),
	}

	resp, err := c.Client.GetObject(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		// no such key just indicates a cache miss
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("s3cache.fetch: failed to get object %v%v: %w",
			c.bucketName, *input.Key, err)
	}
	defer resp.Body.Close()

	var rdr io.Reader = resp.Body
	if c.gzip {
		gr, err := gzip.NewReader(rdr)
		if err != nil {
			return nil, false, fmt.Errorf("s3cache.fetch: failed to open compressed object %v%v: %w",
				c.bucketName, *input.Key, err)
		}
		defer gr.Close()
		rdr = gr
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, false, fmt.Errorf("s3cache.fetch: failed to read object %v%v: %w",
			c.bucketName, *input.Key, err)
	}

	return data, true, nil
}

// Put stores data under key.
func (c *Cache) Put(ctx context.Context, key string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.objectKey(key)),
		Body:   bytes.NewReader(data),
	}

	if c.gzip {
		compressed, err := compress(data)
		if err != nil {
			return fmt.Errorf("s3cache.put: failed to gzip data for %v%v: %w",
				c.bucketName, *input.Key, err)
		}
		input.Body = bytes.NewReader(compressed)
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3cache.put: put failed for %v%v: %w", c.bucketName,
			*input.Key, err)
	}

	return nil
}

// Remove deletes key.
func (c *Cache) Remove(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.objectKey(key)),
	}

	if _, err := c.Client.DeleteObject(ctx, input); err != nil {
		return fmt.Errorf("s3cache.remove: delete failed for %v%v: %w",
			c.bucketName, *input.Key, err)
	}

	return nil
}

// List returns the object keys under prefix, with the gzip suffix removed.
func (c *Cache) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	p := s3.NewListObjectsV2Paginator(c.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucketName),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3cache.list: list failed for %v/%v: %w",
				c.bucketName, prefix, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, strings.TrimSuffix(aws.ToString(obj.Key), gzipSuffix))
		}
	}

	return keys, nil
}

// Get implements httpcache.Cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	data, ok, err := c.Fetch(c.ctx, key)
	if err != nil {
		c.logger.Warn("s3cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return data, ok
}

// Set implements httpcache.Cache.
func (c *Cache) Set(key string, data []byte) {
	if err := c.Put(c.ctx, key, data); err != nil {
		c.logger.Warn("s3cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete implements httpcache.Cache.
func (c *Cache) Delete(key string) {
	if err := c.Remove(c.ctx, key); err != nil {
		c.logger.Warn("s3cache delete failed", zap.String("key", key), zap.Error(err))
	}
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Init loads the default AWS configuration and verifies access to the
// bucket. The default configuration sources are:
// * Environment Variables (e.g. AWS_ACCESS_KEY_ID and AWS_SECRET_KEY)
// * Shared Configuration and Shared Credentials files.
// To use different credentials, modify the returned Cache object's
// Config and Client fields.
func (c *Cache) Init() error {
	var err error
	c.Config, err = config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
	}
	c.Client = s3.NewFromConfig(c.Config)

	// Permission check: verify bucket exists and is accessible
	if _, err = c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket failed for %s: %w", c.bucketName, err)
	}

	// Permission check: verify ability to list objects (read/list permissions)
	if _, err = c.Client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucketName),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3cache.init: list objects failed for %s: %w", c.bucketName, err)
	}

	return nil
}
