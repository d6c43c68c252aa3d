package sync

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauern/agentsync/internal/logging"
)

// listDocuments returns the names of regular files directly inside dir whose
// extension is in exts (compared case-insensitively). Subdirectories are not
// descended into.
func listDocuments(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !hasExtension(entry.Name(), exts) {
			continue
		}
		// Stat follows symlinks so linked documents are included.
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func hasExtension(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// emptyDir removes every entry inside dir, leaving dir itself in place.
// Entries named in keep are left alone. It returns the names removed.
func emptyDir(dir string, keep map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", dir, err)
	}

	var removed []string
	for _, entry := range entries {
		if keep[entry.Name()] {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return removed, fmt.Errorf("failed to remove %q: %w", path, err)
		}
		logging.Debug("removed target entry", logging.Path(path))
		removed = append(removed, entry.Name())
	}
	return removed, nil
}

// copyFile copies a single file from src to dst, preserving permissions.
// An existing dst is replaced rather than written through, so a symlink left
// in the target never redirects the write.
func copyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source %q: %w", src, err)
	}

	// #nosec G304 - src comes from a configured source directory
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source %q: %w", src, err)
	}
	defer func() { _ = srcFile.Close() }()

	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to replace %q: %w", dst, err)
	}

	// #nosec G302 G304 - preserving source permissions, dst is inside an owned target
	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination %q: %w", dst, err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return fmt.Errorf("failed to copy content to %q: %w", dst, err)
	}
	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("failed to close %q: %w", dst, err)
	}

	logging.Debug("copied file", logging.Path(src))
	return nil
}

// fileDigest returns the SHA-256 digest of a file's content.
func fileDigest(path string) ([]byte, error) {
	// #nosec G304 - path is inside a configured source or target directory
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// sameContent reports whether dst is a regular file with the same bytes as src.
// Any error reading dst counts as a difference.
func sameContent(src, dst string) (bool, error) {
	info, err := os.Lstat(dst)
	if err != nil || !info.Mode().IsRegular() {
		return false, nil
	}
	want, err := fileDigest(src)
	if err != nil {
		return false, fmt.Errorf("failed to hash %q: %w", src, err)
	}
	got, err := fileDigest(dst)
	if err != nil {
		return false, nil
	}
	return bytes.Equal(want, got), nil
}
