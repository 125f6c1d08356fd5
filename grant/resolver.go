package grant

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// PathPair holds the canonicalized root and target directories. Target is
// root itself or a descendant of root. Constructed once by Resolve and
// read-only afterwards.
type PathPair struct {
	Root   string
	Target string
}

// CanonicalPath turns user input into an absolute, symlink-free path. It is
// a package var so tests running on an in-memory filesystem (which has no
// symlinks to resolve) can substitute a plain filepath.Clean.
var CanonicalPath = func(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// Resolve canonicalizes both inputs, verifies each is an existing directory
// and verifies that target lies inside root. It has no side effects.
func Resolve(fsys afero.Fs, rootInput, targetInput string) (PathPair, error) {
	root, err := resolveDir(fsys, rootInput)
	if err != nil {
		return PathPair{}, err
	}
	target, err := resolveDir(fsys, targetInput)
	if err != nil {
		return PathPair{}, err
	}
	if !contained(root, target) {
		return PathPair{}, fmt.Errorf("%w: %s is outside %s", ErrNotContained, target, root)
	}
	return PathPair{Root: root, Target: target}, nil
}

func resolveDir(fsys afero.Fs, input string) (string, error) {
	path, err := CanonicalPath(input)
	if err != nil {
		return "", err
	}
	info, err := fsys.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}
	return path, nil
}

// contained reports whether target equals root or is a descendant of root.
// The check is segment-aware: /data/ab does not contain /data/abc.
func contained(root, target string) bool {
	if target == root {
		return true
	}
	if root == "/" {
		return strings.HasPrefix(target, "/")
	}
	return strings.HasPrefix(target, root+string(filepath.Separator))
}
