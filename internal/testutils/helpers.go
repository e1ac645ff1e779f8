// Package testutils holds fixtures shared by adapter and CLI tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// SetupTestRepo initializes a Loam repository in a fresh temp dir and returns
// the absolute path of the dir with the repository. It fails the test
// immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// WorldDoc renders a world as a Markdown document with YAML front matter.
// An empty name lets the loader derive it from the document ID.
func WorldDoc(t *testing.T, name string, objects []string, plans ...[]string) string {
	t.Helper()

	meta := map[string]any{"objects": objects, "plans": plans}
	if name != "" {
		meta["name"] = name
	}
	out, err := yaml.Marshal(meta)
	require.NoError(t, err, "Failed to marshal world front matter")
	return "---\n" + string(out) + "---\n"
}

// WriteWorlds writes documents (file name to content) into dir.
func WriteWorlds(t *testing.T, dir string, docs map[string]string) {
	t.Helper()

	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644), "Failed to write %s", name)
	}
}
