package discover

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("services: {}\n"), 0o644))
}

func TestWalkFindsRecognizedNames(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "docker-compose.yml")
	writeFile(t, root, "compose.yaml")
	writeFile(t, root, "sub/docker-compose.dev.yml")
	writeFile(t, root, "sub/README.md")
	writeFile(t, root, "sub/compose.json")

	paths, err := Walk(root, 3, nil)
	require.NoError(t, err)

	rels := relPaths(t, root, paths)
	assert.Equal(t, []string{"compose.yaml", "docker-compose.yml", "sub/docker-compose.dev.yml"}, rels)
}

func TestWalkDepthBound(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "docker-compose.yml")
	writeFile(t, root, "a/docker-compose.yml")
	writeFile(t, root, "a/b/docker-compose.yml")
	writeFile(t, root, "a/b/c/docker-compose.yml")

	tests := []struct {
		maxDepth int
		want     int
	}{
		{0, 1},
		{1, 2},
		{2, 3},
		{10, 4},
	}

	for _, tt := range tests {
		paths, err := Walk(root, tt.maxDepth, nil)
		require.NoError(t, err)
		assert.Len(t, paths, tt.want, "maxDepth %d", tt.maxDepth)

		for _, p := range paths {
			rel, err := filepath.Rel(root, p)
			require.NoError(t, err)
			depth := strings.Count(filepath.ToSlash(rel), "/")
			assert.LessOrEqual(t, depth, tt.maxDepth)
		}
	}
}

func TestWalkExclusions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "docker-compose.yml")
	writeFile(t, root, "node_modules/pkg/docker-compose.yml")
	writeFile(t, root, "vendor/docker-compose.yml")
	writeFile(t, root, ".cache/docker-compose.yml")
	writeFile(t, root, "custom/docker-compose.yml")

	paths, err := Walk(root, 5, []string{"custom"})
	require.NoError(t, err)

	rels := relPaths(t, root, paths)
	assert.Equal(t, []string{"docker-compose.yml"}, rels)
}

func TestWalkDeterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "z/compose.yml")
	writeFile(t, root, "a/compose.yml")
	writeFile(t, root, "m/docker-compose.yaml")

	first, err := Walk(root, 2, nil)
	require.NoError(t, err)
	second, err := Walk(root, 2, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a/compose.yml", "m/docker-compose.yaml", "z/compose.yml"}, relPaths(t, root, first))
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "nope"), 1, nil)
	assert.Error(t, err)
}

func TestWalkRootIsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "docker-compose.yml")

	_, err := Walk(filepath.Join(root, "docker-compose.yml"), 1, nil)
	assert.Error(t, err)
}

func TestIsTopologyFilename(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"docker-compose.yml", true},
		{"docker-compose.yaml", true},
		{"compose.yml", true},
		{"compose.yaml", true},
		{"docker-compose.dev.yml", true},
		{"docker-compose.production.yaml", true},
		{"compose.override.yml", true},
		{"compose.staging.yaml", true},
		{"docker-compose.weird.yml", false},
		{"Docker-Compose.yml", false},
		{"docker-compose.yml.bak", false},
		{"compose.json", false},
		{"my-compose.yml", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTopologyFilename(tt.name))
		})
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	rels := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	return rels
}
