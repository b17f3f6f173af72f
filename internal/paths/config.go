// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveConfigDir resolves the .bindery config directory from user input.
// It normalizes the input (accepting either a project dir or the .bindery
// dir itself), appends .bindery if needed, and follows redirect files so git
// worktrees can share one config.
//
// Input normalization:
//   - "/path/to/project" -> "/path/to/project/.bindery"
//   - "/path/to/project/.bindery" -> "/path/to/project/.bindery"
//   - "/path/to/dir" (containing config.yaml) -> "/path/to/dir"
//   - "" -> "./.bindery"
func ResolveConfigDir(path string) string {
	if path == "" {
		path = "."
	}
	path = filepath.Clean(path)

	// If path already ends with .bindery, use it directly
	if filepath.Base(path) == ".bindery" {
		return followRedirect(path)
	}

	// If path contains config.yaml directly, use it as the config directory.
	// This supports BINDERY_CONFIG_DIR pointing straight at a config dir.
	cfgPath := filepath.Join(path, "config.yaml")
	if _, err := os.Stat(cfgPath); err == nil {
		return followRedirect(path)
	}

	return followRedirect(filepath.Join(path, ".bindery"))
}

// followRedirect checks for a redirect file and follows it if present.
// Redirect files let git worktrees point at the main worktree's .bindery.
func followRedirect(dir string) string {
	content, err := os.ReadFile(filepath.Join(dir, "redirect")) //nolint:gosec // redirect path is within the config dir
	if err != nil {
		return dir
	}

	target := strings.TrimSpace(string(content))
	if target == "" {
		return dir
	}

	return filepath.Clean(filepath.Join(dir, target))
}
