package addin

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// ManifestName is the file that marks an add-in directory.
const ManifestName = "addin.yaml"

// Resolve takes an add-in location (local dir relative to baseDir, or git URL)
// and returns the local directory holding the add-in manifest.
func Resolve(ctx context.Context, location, baseDir string, logger *slog.Logger) (string, error) {
	if isGitURL(location) {
		return fetchRepo(ctx, location, logger)
	}

	path := location
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", absPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", absPath)
	}

	root, err := findManifestRoot(absPath)
	if err != nil {
		return "", err
	}
	logger.Debug("resolved add-in location", "location", location, "dir", root)
	return root, nil
}

func isGitURL(location string) bool {
	return strings.HasPrefix(location, "git@") ||
		((strings.HasPrefix(location, "https://") || strings.HasPrefix(location, "http://")) &&
			strings.HasSuffix(strings.TrimSuffix(location, "/"), ".git"))
}

// cacheDir returns a stable directory for caching a cloned add-in.
// Uses ~/.cache/partcheck/addins/<hash> where hash is derived from the URL.
func cacheDir(url string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	h := sha256.Sum256([]byte(url))
	return filepath.Join(home, ".cache", "partcheck", "addins", fmt.Sprintf("%x", h[:8])), nil
}

// fetchRepo updates a cached clone or makes a fresh one. A failed update falls
// back to a fresh clone.
func fetchRepo(ctx context.Context, url string, logger *slog.Logger) (string, error) {
	dir, err := cacheDir(url)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return cloneRepo(ctx, url, dir, logger)
	}

	logger.Info("updating cached add-in", "url", url, "dir", dir)
	for _, args := range [][]string{
		{"fetch", "--depth=1", "origin"},
		{"reset", "--hard", "origin/HEAD"},
	} {
		if err := git(ctx, dir, args...); err != nil {
			logger.Warn("git update failed, will re-clone", "step", args[0], "error", err)
			_ = os.RemoveAll(dir)
			return cloneRepo(ctx, url, dir, logger)
		}
	}
	return findManifestRoot(dir)
}

func cloneRepo(ctx context.Context, url, dir string, logger *slog.Logger) (string, error) {
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}

	logger.Info("cloning add-in", "url", url, "dest", dir)
	if err := git(ctx, "", "clone", "--depth=1", url, dir); err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("git clone: %w", err)
	}

	root, err := findManifestRoot(dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", err
	}
	return root, nil
}

func git(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// findManifestRoot returns root if it holds a manifest, otherwise the
// alphabetically first immediate subdirectory that does. Hidden directories are skipped.
func findManifestRoot(root string) (string, error) {
	if _, err := os.Stat(filepath.Join(root, ManifestName)); err == nil {
		return root, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return "", err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		sub := filepath.Join(root, e.Name())
		if _, err := os.Stat(filepath.Join(sub, ManifestName)); err == nil {
			return sub, nil
		}
	}
	return "", fmt.Errorf("no %s found in %s or immediate subdirectories", ManifestName, root)
}
