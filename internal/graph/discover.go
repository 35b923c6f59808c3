package graph

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultExcludeDirs are directory names never descended into.
var DefaultExcludeDirs = []string{".git", "node_modules"}

// DiscoverOptions controls which files Discover returns.
type DiscoverOptions struct {
	// Extensions selects files by extension (with dot). Empty means DefaultExtensions.
	Extensions []string
	// ExcludeDirs are directory base names to skip. Empty means DefaultExcludeDirs.
	ExcludeDirs []string
	// RespectGitignore applies the root .gitignore, if present.
	RespectGitignore bool
}

// Discover walks root and returns the candidate source files, sorted.
// Unreadable directories are skipped.
func Discover(ctx context.Context, root string, opts DiscoverOptions) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "discover", Path: root, Err: errors.New("not a directory")}
	}

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[strings.ToLower(e)] = true
	}

	excludes := opts.ExcludeDirs
	if len(excludes) == 0 {
		excludes = DefaultExcludeDirs
	}
	excludeSet := make(map[string]bool, len(excludes))
	for _, d := range excludes {
		excludeSet[d] = true
	}

	var gitignore *ignore.GitIgnore
	if opts.RespectGitignore {
		gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
		if err == nil {
			gitignore = gi
		}
	}

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil // skip inaccessible paths
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == root {
				return nil
			}
			if excludeSet[d.Name()] || (gitignore != nil && gitignore.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if !extSet[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if gitignore != nil && gitignore.MatchesPath(rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(files)
	return files, nil
}
