package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Primary topology filenames, matched exactly.
var primaryNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// Environment tokens recognized in variant filenames like
// docker-compose.dev.yml or compose.production.yaml.
var envTokens = []string{
	"dev", "development",
	"prod", "production",
	"test", "testing",
	"staging",
	"local",
	"override",
}

var fileStems = []string{"docker-compose", "compose"}
var fileExtensions = []string{".yml", ".yaml"}

// DefaultExcludedDirs lists directory names never descended into.
// Callers merge their own additions via Walk; any name starting with
// "." is excluded regardless.
var DefaultExcludedDirs = []string{
	"node_modules",
	"vendor",
	"dist",
	"build",
	"target",
	"__pycache__",
	"coverage",
	"tmp",
	".git",
	".hg",
	".svn",
	".idea",
	".vscode",
}

// Walk enumerates recognized topology files under root, descending at
// most maxDepth directory levels (0 = root only). Directory entries are
// sorted before descent so the result order is reproducible. Unreadable
// subdirectories are skipped; only a missing or unreadable root fails.
func Walk(root string, maxDepth int, excludedDirNames []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("search root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("search root %s: not a directory", root)
	}

	excluded := make(map[string]bool, len(DefaultExcludedDirs)+len(excludedDirNames))
	for _, name := range DefaultExcludedDirs {
		excluded[name] = true
	}
	for _, name := range excludedDirNames {
		excluded[name] = true
	}

	var found []string
	walkDir(root, 0, maxDepth, excluded, &found)
	return found, nil
}

func walkDir(dir string, depth, maxDepth int, excluded map[string]bool, found *[]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Permission problems on a subtree never abort the scan.
		return
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if depth >= maxDepth {
				continue
			}
			if excluded[name] || strings.HasPrefix(name, ".") {
				continue
			}
			walkDir(filepath.Join(dir, name), depth+1, maxDepth, excluded, found)
			continue
		}
		if IsTopologyFilename(name) {
			*found = append(*found, filepath.Join(dir, name))
		}
	}
}

// IsTopologyFilename reports whether name is a recognized primary or
// environment-variant topology filename.
func IsTopologyFilename(name string) bool {
	if isPrimaryFilename(name) {
		return true
	}
	return isVariantFilename(name)
}

func isPrimaryFilename(name string) bool {
	for _, p := range primaryNames {
		if name == p {
			return true
		}
	}
	return false
}

// isVariantFilename matches stem + "." + env token + extension,
// e.g. docker-compose.staging.yaml.
func isVariantFilename(name string) bool {
	for _, ext := range fileExtensions {
		if !strings.HasSuffix(name, ext) {
			continue
		}
		base := strings.TrimSuffix(name, ext)
		for _, stem := range fileStems {
			if !strings.HasPrefix(base, stem+".") {
				continue
			}
			token := strings.ToLower(strings.TrimPrefix(base, stem+"."))
			for _, env := range envTokens {
				if token == env {
					return true
				}
			}
		}
	}
	return false
}
