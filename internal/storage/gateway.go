// Package storage maps user identities to their backing task files and moves
// tasks between those files and memory.
//
// Every call opens, uses and closes its file before returning. There is no
// locking: concurrent writers to the same file are last-writer-wins.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/taskbook/internal/codec"
	"github.com/mrz1836/taskbook/internal/constants"
	"github.com/mrz1836/taskbook/internal/domain"
	tberrors "github.com/mrz1836/taskbook/internal/errors"
)

// Directory and file permission constants.
const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// LoadResult is the outcome of a Load or LoadAll call.
type LoadResult struct {
	// Tasks are the well-formed records, in file order.
	Tasks []*domain.Task
	// Found is false when no backing file existed. This is not an error.
	Found bool
	// Warnings lists records that were skipped as malformed.
	Warnings []codec.Warning
	// Unreadable lists owners whose file LoadAll could not read and skipped.
	Unreadable []string
}

// Gateway reads and writes per-user task files in a single directory.
type Gateway struct {
	dir    string
	prefix string
	suffix string
	logger zerolog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger used for load notices and format warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithNaming overrides the task file prefix and suffix.
func WithNaming(prefix, suffix string) Option {
	return func(g *Gateway) {
		g.prefix = prefix
		g.suffix = suffix
	}
}

// NewGateway creates a Gateway rooted at dir. An empty dir means the
// current working directory.
func NewGateway(dir string, opts ...Option) (*Gateway, error) {
	if dir == "" {
		dir = "."
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}

	g := &Gateway{
		dir:    absDir,
		prefix: constants.TaskFilePrefix,
		suffix: constants.TaskFileSuffix,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Dir returns the absolute data directory.
func (g *Gateway) Dir() string {
	return g.dir
}

// FileFor returns the backing file path for identity.
func (g *Gateway) FileFor(identity string) string {
	return filepath.Join(g.dir, g.prefix+FileKey(identity)+g.suffix)
}

// FileKey is the form of identity embedded in its task file name. Spaces
// become underscores, so two identities with the same key share a file.
func FileKey(identity string) string {
	return strings.ReplaceAll(identity, " ", "_")
}

// Save overwrites identity's file with exactly the tasks it owns, in order.
func (g *Gateway) Save(ctx context.Context, tasks []*domain.Task, identity string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := CheckIdentity(identity); err != nil {
		return err
	}

	owned := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Owner == identity {
			owned = append(owned, t)
		}
	}

	path := g.FileFor(identity)
	if err := os.MkdirAll(g.dir, dirPerm); err != nil {
		return fmt.Errorf("%w: failed to create data directory: %w", tberrors.ErrStorageIO, err)
	}
	if err := WriteAtomic(path, codec.Encode(owned)); err != nil {
		return fmt.Errorf("%w: %s: %w", tberrors.ErrStorageIO, filepath.Base(path), err)
	}

	g.logger.Debug().
		Str("owner", identity).
		Str("file", filepath.Base(path)).
		Int("tasks", len(owned)).
		Msg("tasks saved")
	return nil
}

// SaveOwners saves once for each distinct identity in owners.
// All owners are attempted; the returned error joins every failure.
func (g *Gateway) SaveOwners(ctx context.Context, tasks []*domain.Task, owners []string) error {
	seen := make(map[string]bool, len(owners))
	var errs []error
	for _, owner := range owners {
		if seen[owner] {
			continue
		}
		seen[owner] = true
		if err := g.Save(ctx, tasks, owner); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Load reads identity's file. A missing file yields an empty result with
// Found=false and no error.
func (g *Gateway) Load(ctx context.Context, identity string) (*LoadResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := CheckIdentity(identity); err != nil {
		return nil, err
	}
	return g.loadFile(g.FileFor(identity), identity)
}

// LoadAll loads every task file in the data directory and concatenates the
// results. Found is false when no task files exist. A file that cannot be
// read is logged and skipped so the remaining owners still load.
func (g *Gateway) LoadAll(ctx context.Context) (*LoadResult, error) {
	owners, err := g.Owners(ctx)
	if err != nil {
		return nil, err
	}

	all := &LoadResult{Tasks: []*domain.Task{}}
	if len(owners) == 0 {
		g.logger.Info().Str("dir", g.dir).Msg("no task files found in directory")
		return all, nil
	}

	all.Found = true
	for _, owner := range owners {
		res, err := g.loadFile(g.FileFor(owner), owner)
		if err != nil {
			g.logger.Warn().Str("owner", owner).Err(err).Msg("skipping unreadable task file")
			all.Unreadable = append(all.Unreadable, owner)
			continue
		}
		all.Tasks = append(all.Tasks, res.Tasks...)
		all.Warnings = append(all.Warnings, res.Warnings...)
	}
	return all, nil
}

// Owners returns the identity embedded in each task file name, sorted by
// file name. Spaces in identities are reported as underscores.
func (g *Gateway) Owners(ctx context.Context) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	entries, err := os.ReadDir(g.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to list data directory: %w", tberrors.ErrStorageIO, err)
	}

	var owners []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || len(name) <= len(g.prefix)+len(g.suffix) {
			continue
		}
		if strings.HasPrefix(name, g.prefix) && strings.HasSuffix(name, g.suffix) {
			owners = append(owners, strings.TrimSuffix(strings.TrimPrefix(name, g.prefix), g.suffix))
		}
	}
	return owners, nil
}

// RemoveUser deletes identity's task file if it exists and reports whether a
// file was removed.
func (g *Gateway) RemoveUser(ctx context.Context, identity string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	if err := CheckIdentity(identity); err != nil {
		return false, err
	}

	path := g.FileFor(identity)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: failed to remove %s: %w", tberrors.ErrStorageIO, filepath.Base(path), err)
	}

	g.logger.Info().Str("owner", identity).Msg("task file removed")
	return true, nil
}

// loadFile reads and decodes one task file. owner is the default owner for
// records without one.
func (g *Gateway) loadFile(path, owner string) (*LoadResult, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is built from the data dir and a checked identity
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			g.logger.Info().Str("owner", owner).Msg("no task file found for user")
			return &LoadResult{Tasks: []*domain.Task{}}, nil
		}
		return nil, fmt.Errorf("%w: %s: %w", tberrors.ErrStorageIO, filepath.Base(path), err)
	}

	tasks, warnings := codec.Decode(data, owner)
	for _, w := range warnings {
		g.logger.Warn().
			Str("file", filepath.Base(path)).
			Str("record", w.Record).
			Err(w.Err).
			Msg("skipping invalid task")
	}

	return &LoadResult{Tasks: tasks, Found: true, Warnings: warnings}, nil
}

// CheckIdentity rejects identities that are empty or could escape the data
// directory or break the task file format.
func CheckIdentity(identity string) error {
	if strings.TrimSpace(identity) == "" {
		return fmt.Errorf("identity %w", tberrors.ErrEmptyValue)
	}
	if strings.ContainsAny(identity, `/\"{},`) || strings.Contains(identity, "..") {
		return fmt.Errorf("%w: %q", tberrors.ErrInvalidIdentity, identity)
	}
	return nil
}
