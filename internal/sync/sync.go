package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauern/agentsync/internal/logging"
	"github.com/klauern/agentsync/internal/model"
)

// DefaultExtensions lists the file extensions treated as agent documents.
func DefaultExtensions() []string {
	return []string{".md"}
}

// Options configures an Engine.
type Options struct {
	// Mode selects full replacement or digest-based incremental sync
	Mode Mode
	// Extensions selects document files by extension
	Extensions []string
	// DryRun reports the planned changes without writing anything
	DryRun bool
	// OnEntry, if set, is called after each mapping entry is processed
	OnEntry func(EntryResult)
}

// DefaultOptions returns full-replace sync of markdown documents.
func DefaultOptions() Options {
	return Options{
		Mode:       ModeReplace,
		Extensions: DefaultExtensions(),
	}
}

// Engine mirrors source directories into target directories.
type Engine struct {
	mappings []model.Mapping
	opts     Options
}

// New creates an Engine for the given mapping table.
func New(mappings []model.Mapping, opts Options) *Engine {
	if !opts.Mode.IsValid() {
		opts.Mode = ModeReplace
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions()
	}
	return &Engine{mappings: mappings, opts: opts}
}

// SyncAll processes every mapping entry in table order. It returns the
// results gathered so far together with the first filesystem error.
func (e *Engine) SyncAll(ctx context.Context) (*Result, error) {
	result := &Result{Mode: e.opts.Mode, DryRun: e.opts.DryRun}
	log := logging.WithContext(ctx).With(logging.Operation("sync"))

	for _, m := range e.mappings {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		entry, err := e.syncEntry(log.With(logging.Framework(m.Name)), m)
		if err != nil {
			log.Error("sync failed", logging.Framework(m.Name), logging.Err(err))
			return result, fmt.Errorf("sync %s: %w", m.Name, err)
		}
		result.Entries = append(result.Entries, entry)
		if e.opts.OnEntry != nil {
			e.opts.OnEntry(entry)
		}
	}

	log.Info("sync complete", logging.Count(result.Total()))
	return result, nil
}

func (e *Engine) syncEntry(log *slog.Logger, m model.Mapping) (EntryResult, error) {
	entry := EntryResult{Mapping: m}

	info, err := os.Stat(m.Source)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Info("source directory missing, skipping", logging.Path(m.Source))
		entry.Status = StatusSkipped
		return entry, nil
	case err != nil:
		return entry, fmt.Errorf("failed to stat source %q: %w", m.Source, err)
	case !info.IsDir():
		return entry, fmt.Errorf("source %q is not a directory", m.Source)
	}

	if err := checkOverlap(m); err != nil {
		return entry, err
	}

	names, err := listDocuments(m.Source, e.opts.Extensions)
	if err != nil {
		return entry, err
	}

	if e.opts.DryRun {
		return e.plan(m, names)
	}

	if err := os.MkdirAll(m.Target, 0o750); err != nil {
		return entry, fmt.Errorf("failed to create target %q: %w", m.Target, err)
	}

	var keep map[string]bool
	if e.opts.Mode == ModeIncremental {
		keep = make(map[string]bool, len(names))
		for _, name := range names {
			same, err := sameContent(filepath.Join(m.Source, name), filepath.Join(m.Target, name))
			if err != nil {
				return entry, err
			}
			if same {
				keep[name] = true
				entry.Unchanged = append(entry.Unchanged, name)
			}
		}
	}

	entry.Removed, err = emptyDir(m.Target, keep)
	if err != nil {
		return entry, err
	}

	if len(names) == 0 {
		log.Warn("no documents found in source", logging.Path(m.Source))
		entry.Status = StatusEmpty
		return entry, nil
	}

	for _, name := range names {
		if !keep[name] {
			if err := copyFile(filepath.Join(m.Source, name), filepath.Join(m.Target, name)); err != nil {
				return entry, err
			}
		}
		entry.Files = append(entry.Files, name)
	}

	entry.Status = StatusSynced
	log.Info("synced framework", logging.Count(len(entry.Files)), logging.Path(m.Target))
	return entry, nil
}

// plan computes the changes a real run would make without touching disk.
func (e *Engine) plan(m model.Mapping, names []string) (EntryResult, error) {
	entry := EntryResult{Mapping: m, Files: names, Status: StatusSynced}
	if len(names) == 0 {
		entry.Status = StatusEmpty
	}

	existing, err := os.ReadDir(m.Target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entry, nil
		}
		return entry, fmt.Errorf("failed to read target %q: %w", m.Target, err)
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}
	for _, ent := range existing {
		name := ent.Name()
		if e.opts.Mode == ModeIncremental && wanted[name] {
			same, err := sameContent(filepath.Join(m.Source, name), filepath.Join(m.Target, name))
			if err != nil {
				return entry, err
			}
			if same {
				entry.Unchanged = append(entry.Unchanged, name)
				continue
			}
		}
		entry.Removed = append(entry.Removed, name)
	}
	return entry, nil
}

// checkOverlap refuses mappings where writing the target would touch the
// source tree. Symlinks are resolved first, so a target linked to its source
// is caught as well.
func checkOverlap(m model.Mapping) error {
	src, err := resolvePath(m.Source)
	if err != nil {
		return fmt.Errorf("failed to resolve source %q: %w", m.Source, err)
	}
	dst, err := resolvePath(m.Target)
	if err != nil {
		return fmt.Errorf("failed to resolve target %q: %w", m.Target, err)
	}
	sep := string(filepath.Separator)
	if src == dst || strings.HasPrefix(src, dst+sep) || strings.HasPrefix(dst, src+sep) {
		return fmt.Errorf("target %q overlaps source %q", m.Target, m.Source)
	}
	return nil
}

// resolvePath returns the absolute, symlink-free form of path. Components
// that do not exist yet are appended to their deepest existing ancestor.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	var missing []string
	for dir := abs; ; {
		resolved, err := filepath.EvalSymlinks(dir)
		if err == nil {
			return filepath.Join(append([]string{resolved}, missing...)...), nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		missing = append([]string{filepath.Base(dir)}, missing...)
		dir = parent
	}
}

// VerifyTargets counts the documents currently present in each target. It
// is purely observational.
func (e *Engine) VerifyTargets() []TargetStatus {
	out := make([]TargetStatus, 0, len(e.mappings))
	for _, m := range e.mappings {
		status := TargetStatus{Mapping: m}
		info, err := os.Stat(m.Target)
		if err != nil || !info.IsDir() {
			logging.Info("target directory missing", logging.Framework(m.Name), logging.Path(m.Target))
			out = append(out, status)
			continue
		}
		status.Exists = true
		names, err := listDocuments(m.Target, e.opts.Extensions)
		if err != nil {
			status.Err = err
		}
		status.Count = len(names)
		out = append(out, status)
	}
	return out
}
