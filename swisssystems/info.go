/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swisssystems

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

type SwissSystem int

const (
	SystemNone SwissSystem = iota
	Burstein
	// BursteinBaku is Burstein with Baku acceleration as the default
	// acceleration system.
	BursteinBaku
)

var systemNames = map[SwissSystem]string{
	SystemNone:   "none",
	Burstein:     "burstein",
	BursteinBaku: "burstein-baku",
}

func (s SwissSystem) String() string {
	if name, ok := systemNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SwissSystem(%d)", int(s))
}

func ParseSwissSystem(name string) (SwissSystem, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range systemNames {
		if n == name && s != SystemNone {
			return s, nil
		}
	}

	return SystemNone, fmt.Errorf("unknown swiss system %q", name)
}

// Info is the capability set of one Swiss system.
type Info interface {
	// ComputeMatching pairs the next round. It takes ownership of t and may
	// mutate it. diag receives optional progress output and may be nil.
	ComputeMatching(t *tournament.Tournament, diag io.Writer) (*Matching, error)
	// UpdateAccelerations assigns accelerations for the next round, or fails
	// with *UnapplicableFeatureError when the system has no default
	// acceleration system.
	UpdateAccelerations(t *tournament.Tournament) error
	// PrintChecklist writes the system's checklist for the current standings.
	PrintChecklist(w io.Writer, t *tournament.Tournament) error
}

// NoAccelerations provides the UpdateAccelerations of systems without a
// default acceleration system. Embed it in an Info implementation.
type NoAccelerations struct{}

func (NoAccelerations) UpdateAccelerations(*tournament.Tournament) error {
	return &UnapplicableFeatureError{Feature: "a default acceleration system"}
}

var (
	registryMu sync.RWMutex
	registry   = make(map[SwissSystem]Info)
)

// Register makes a system available through GetInfo. It is meant to be
// called from the init function of the package implementing the system.
func Register(s SwissSystem, info Info) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if info == nil {
		panic("swisssystems: Register info is nil")
	}
	if _, dup := registry[s]; dup {
		panic("swisssystems: Register called twice for " + s.String())
	}
	registry[s] = info
}

// GetInfo retrieves the Info registered for s.
func GetInfo(s SwissSystem) (Info, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	info, ok := registry[s]
	if !ok {
		return nil, fmt.Errorf("swiss system %v is not available", s)
	}
	return info, nil
}

// Systems lists the registered systems in enumeration order.
func Systems() []SwissSystem {
	registryMu.RLock()
	defer registryMu.RUnlock()

	systems := make([]SwissSystem, 0, len(registry))
	for s := range registry {
		systems = append(systems, s)
	}
	sort.Slice(systems, func(i, j int) bool { return systems[i] < systems[j] })

	return systems
}

// detachableWriter forwards writes to w until detach is called and drops
// them afterwards.
type detachableWriter struct {
	mu       sync.Mutex
	w        io.Writer
	detached bool
}

func (dw *detachableWriter) Write(p []byte) (int, error) {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dw.detached {
		return len(p), nil
	}
	return dw.w.Write(p)
}

func (dw *detachableWriter) detach() {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	dw.detached = true
}

// ComputeMatchingContext runs info.ComputeMatching but gives up when ctx is
// done. The abandoned search keeps running on its own copy of t until it
// finishes, and nothing it writes reaches diag once this returns.
func ComputeMatchingContext(ctx context.Context, info Info,
	t *tournament.Tournament, diag io.Writer) (*Matching, error) {

	type result struct {
		m   *Matching
		err error
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pairing abandoned: %w", err)
	}
	if diag == nil {
		diag = io.Discard
	}
	out := &detachableWriter{w: diag}
	done := make(chan result, 1)
	t = t.Clone()
	go func() {
		m, err := info.ComputeMatching(t, out)
		done <- result{m, err}
	}()

	select {
	case r := <-done:
		return r.m, r.err
	case <-ctx.Done():
		out.detach()
		return nil, fmt.Errorf("pairing abandoned: %w", ctx.Err())
	}
}

// UpdateAccelerationsIfSupported applies the system's default acceleration
// and quietly does nothing for systems without one.
func UpdateAccelerationsIfSupported(info Info, t *tournament.Tournament) error {
	err := info.UpdateAccelerations(t)
	if errors.Is(err, ErrUnapplicableFeature) {
		return nil
	}

	return err
}
