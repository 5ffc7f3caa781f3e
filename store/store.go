/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package store persists tournaments as JSON, either in a local directory
// or in an S3 bucket.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mikeb26/boylstonchessclub-pairings/internal/config"
	"github.com/mikeb26/boylstonchessclub-pairings/s3cache"
	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

const (
	fileSuffix = ".json"
	s3Prefix   = "tournaments"
)

var ErrNotFound = errors.New("tournament not found")

type Store interface {
	Load(ctx context.Context, name string) (*tournament.Tournament, error)
	Save(ctx context.Context, name string, t *tournament.Tournament) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

// New returns an S3Store when cfg names a bucket and a FileStore otherwise.
func New(ctx context.Context, cfg config.StorageConfig,
	logger *zap.Logger) (Store, error) {

	if cfg.Bucket == "" {
		return NewFileStore(cfg.Dir), nil
	}

	cache := s3cache.New(ctx, cfg.Bucket, cfg.Gzip, logger)
	cache.KeyFunc = s3cache.PrefixedKey(s3Prefix)
	if err := cache.Init(); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	logger.Debug("using S3 tournament store", zap.String("bucket", cfg.Bucket))

	return NewS3Store(cache), nil
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("store: invalid tournament name %q", name)
	}
	return nil
}

func encode(t *tournament.Tournament) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileStore keeps one <name>.json file per tournament under Dir.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (fs *FileStore) path(name string) string {
	return filepath.Join(fs.Dir, name+fileSuffix)
}

func (fs *FileStore) Load(_ context.Context, name string) (*tournament.Tournament, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	f, err := os.Open(fs.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, name)
	} else if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	defer f.Close()

	return tournament.Decode(f)
}

// Save writes through a temporary file so a failed write never truncates
// the previous round's state.
func (fs *FileStore) Save(_ context.Context, name string, t *tournament.Tournament) error {
	if err := checkName(name); err != nil {
		return err
	}
	data, err := encode(t)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(fs.Dir, 0o755); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	tmp, err := os.CreateTemp(fs.Dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := os.Rename(tmp.Name(), fs.path(name)); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	return nil
}

func (fs *FileStore) Delete(_ context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	err := os.Remove(fs.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrNotFound, name)
	} else if err != nil {
		return fmt.Errorf("store: %w", err)
	}

	return nil
}

func (fs *FileStore) List(_ context.Context) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(fs.Dir, "*"+fileSuffix))
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), fileSuffix))
	}
	sort.Strings(names)

	return names, nil
}

// S3Store keeps tournaments as objects under tournaments/ in a bucket.
type S3Store struct {
	cache *s3cache.Cache
}

// NewS3Store wraps an initialized cache whose KeyFunc keeps keys readable.
func NewS3Store(cache *s3cache.Cache) *S3Store {
	return &S3Store{cache: cache}
}

func (s *S3Store) Load(ctx context.Context, name string) (*tournament.Tournament, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, ok, err := s.cache.Fetch(ctx, name+fileSuffix)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, name)
	}

	return tournament.Decode(bytes.NewReader(data))
}

func (s *S3Store) Save(ctx context.Context, name string, t *tournament.Tournament) error {
	if err := checkName(name); err != nil {
		return err
	}
	data, err := encode(t)
	if err != nil {
		return err
	}
	if err := s.cache.Put(ctx, name+fileSuffix, data); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	return nil
}

func (s *S3Store) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := s.cache.Remove(ctx, name+fileSuffix); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	return nil
}

func (s *S3Store) List(ctx context.Context) ([]string, error) {
	keys, err := s.cache.List(ctx, s3Prefix+"/")
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	var names []string
	for _, k := range keys {
		k = strings.TrimPrefix(k, s3Prefix+"/")
		if strings.HasSuffix(k, fileSuffix) {
			names = append(names, strings.TrimSuffix(k, fileSuffix))
		}
	}
	sort.Strings(names)

	return names, nil
}
