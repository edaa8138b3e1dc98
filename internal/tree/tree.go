// Package tree enumerates the files of a template tree.
package tree

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are never part of a generated project.
var DefaultExcludes = []string{
	".git",
	".git/**",
	"**/.git",
	"**/.git/**",
	".DS_Store",
	"**/.DS_Store",
}

// Excluded reports whether the slash-separated relative path matches any of
// the doublestar patterns. Malformed patterns never match.
func Excluded(rel string, patterns []string) bool {
	for _, p := range patterns {
		if p == "" {
			continue
		}
		ok, err := doublestar.Match(p, rel)
		if err == nil && ok {
			return true
		}
	}
	return false
}

// ValidatePatterns returns an error for the first malformed pattern.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

// ListFiles returns every file below root as a slash-separated path relative
// to root, sorted lexically. Anything that is not a directory counts as a
// file, including symlinks to files and dangling symlinks. Symlinks to
// directories are neither followed nor listed. Paths matching one of excludes
// are left out; an excluded directory is not descended into.
func ListFiles(root string, excludes []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if Excluded(rel, excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || linksToDir(path, d) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

func linksToDir(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
