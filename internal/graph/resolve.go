package graph

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
)

// DefaultProbeExtensions are appended to a relative specifier that does not
// name an existing file ("./b" -> "./b.ts"). A Resolver built with nil
// (strict mode) resolves exact paths only.
var DefaultProbeExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// Resolver turns raw import specifiers into graph nodes relative to the
// importing file's directory. It never fails: anything that does not
// canonicalize to an existing regular file becomes an unresolved node keyed
// by the raw specifier.
type Resolver struct {
	probeExtensions []string
}

// NewResolver builds a Resolver. probeExtensions are tried in order when the
// joined path does not exist; pass nil for strict resolution.
func NewResolver(probeExtensions []string) *Resolver {
	return &Resolver{probeExtensions: probeExtensions}
}

// Resolution is the outcome of resolving one specifier.
type Resolution struct {
	Node   FileNode
	Reason Reason
	Err    error // underlying filesystem error for ReasonNotFound / ReasonAccess
}

// Resolve returns the node for rawSpecifier imported from sourceFileDir.
func (r *Resolver) Resolve(sourceFileDir, rawSpecifier string) FileNode {
	return r.Lookup(sourceFileDir, rawSpecifier).Node
}

// Lookup resolves rawSpecifier and reports why it did not resolve, if it didn't.
func (r *Resolver) Lookup(sourceFileDir, rawSpecifier string) Resolution {
	unresolved := FileNode{
		Name:          specifierName(rawSpecifier),
		CanonicalPath: rawSpecifier,
	}

	if !isRelative(rawSpecifier) {
		return Resolution{Node: unresolved, Reason: ReasonBare}
	}

	base := rawSpecifier
	if !filepath.IsAbs(base) {
		base = filepath.Join(sourceFileDir, filepath.FromSlash(rawSpecifier))
	}

	candidates := make([]string, 0, 1+len(r.probeExtensions))
	candidates = append(candidates, base)
	for _, ext := range r.probeExtensions {
		candidates = append(candidates, base+ext)
	}

	reason := ReasonNotFound
	var cause error
	for _, candidate := range candidates {
		canonical, err := r.canonicalFile(candidate)
		if err == nil {
			return Resolution{Node: FileNode{
				Name:          specifierName(rawSpecifier),
				CanonicalPath: canonical,
				Resolved:      true,
			}}
		}
		// An access failure outranks "does not exist" in the report.
		if !isMissing(err) {
			reason = ReasonAccess
			cause = err
		} else if cause == nil {
			cause = err
		}
	}
	return Resolution{Node: unresolved, Reason: reason, Err: cause}
}

// Canonicalize returns the absolute, symlink-free, platform-normalized form
// of path. It is applied to scanned files so that keys compare equal to
// resolved import targets.
func (r *Resolver) Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return normalizeCase(filepath.Clean(resolved)), nil
}

// FileNodeFor returns the graph node of a scanned file.
func (r *Resolver) FileNodeFor(path string) (FileNode, error) {
	canonical, err := r.Canonicalize(path)
	if err != nil {
		return FileNode{}, err
	}
	return FileNode{
		Name:          filepath.Base(path),
		CanonicalPath: canonical,
		Resolved:      true,
	}, nil
}

// canonicalFile canonicalizes path and requires the result to be a regular file.
func (r *Resolver) canonicalFile(path string) (string, error) {
	canonical, err := r.Canonicalize(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(canonical)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", &fs.PathError{Op: "resolve", Path: canonical, Err: fs.ErrNotExist}
	}
	return canonical, nil
}

// isMissing reports whether err means the path does not exist, including a
// path that runs through a regular file ("./a.ts/x").
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// isRelative reports whether spec uses a relative or absolute path form.
// Everything else is a bare (package) specifier.
func isRelative(spec string) bool {
	return spec == "." || spec == ".." ||
		strings.HasPrefix(spec, "./") ||
		strings.HasPrefix(spec, "../") ||
		strings.HasPrefix(spec, "/")
}

// specifierName is the last path segment of a raw specifier.
func specifierName(spec string) string {
	trimmed := strings.TrimRight(spec, "/")
	if trimmed == "" {
		return spec
	}
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// normalizeCase folds case on platforms whose default filesystems are
// case-insensitive.
func normalizeCase(path string) string {
	if runtime.GOOS == "windows" {
		return strings.ToLower(path)
	}
	return path
}
