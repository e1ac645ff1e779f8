package loam

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/locus/internal/testutils"
	"github.com/aretw0/locus/pkg/domain"
	"github.com/aretw0/locus/pkg/ports/tests"
)

func TestLoader_Contract(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	docA := core.Document{
		ID: "w1.md",
		Content: `---
objects: ["a - block", "b - block"]
plans:
  - ["(move a b)", "(move b a)"]
  - ["(move a b)"]
---
Two blocks swapping places.`,
	}
	docB := core.Document{
		ID: "w2.md",
		Content: `---
name: tower
objects: ["x - block", "y - block"]
plans:
  - - operator: move
      args: [x, y]
---
Long-form steps.`,
	}

	require.NoError(t, repo.Save(ctx, docA))
	require.NoError(t, repo.Save(ctx, docB))

	loader := New(loam.NewTypedRepository[WorldMetadata](repo))

	tests.CorpusLoaderContractTest(t, loader, map[string]int{"w1": 2, "tower": 1})
}

func TestLoader_DecodesSteps(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"b.md": `---
objects: ["c - crate", "t - truck"]
plans:
  - - "(load c t)"
    - operator: UNLOAD
      args: [c, t]
---
`,
		"a.md": `---
objects: ["p - plane"]
plans:
  - ["(fly p)"]
---
`,
	}
	testutils.WriteWorlds(t, tmpDir, files)

	loader := New(loam.NewTypedRepository[WorldMetadata](repo))
	corpus, err := loader.LoadCorpus(context.Background())
	require.NoError(t, err)
	require.Len(t, corpus.Worlds, 2)

	// Ordered by document ID.
	assert.Equal(t, "a", corpus.Worlds[0].Name)
	w := corpus.Worlds[1]
	assert.Equal(t, "b", w.Name)
	assert.Equal(t, []domain.Object{{Name: "c", Type: "crate"}, {Name: "t", Type: "truck"}}, w.Objects)
	require.Len(t, w.Plans, 1)
	assert.Equal(t, "(load c t)", w.Plans[0].Actions[0].String())
	assert.Equal(t, "(unload c t)", w.Plans[0].Actions[1].String())
}

func TestLoader_DetectsCollisions(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	doc := testutils.WorldDoc(t, "same", nil)
	testutils.WriteWorlds(t, tmpDir, map[string]string{"one.md": doc, "two.md": doc})

	loader := New(loam.NewTypedRepository[WorldMetadata](repo))
	_, err := loader.LoadCorpus(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestLoader_BadStep(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	testutils.WriteWorlds(t, tmpDir, map[string]string{
		"bad.md": "---\nplans:\n  - - operator: \"\"\n---\n",
	})

	loader := New(loam.NewTypedRepository[WorldMetadata](repo))
	_, err := loader.LoadCorpus(context.Background())
	assert.True(t, errors.Is(err, domain.ErrInvalidTrace), "got %v", err)
}

func TestLoader_BadObject(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	testutils.WriteWorlds(t, tmpDir, map[string]string{
		"w.md": testutils.WorldDoc(t, "w", []string{"x - (either)"}, []string{"(go x)"}),
	})

	loader := New(loam.NewTypedRepository[WorldMetadata](repo))
	_, err := loader.LoadCorpus(context.Background())
	assert.True(t, errors.Is(err, domain.ErrInvalidTrace), "got %v", err)
}

func TestDecodeStep(t *testing.T) {
	act, err := decodeStep(map[string]any{"operator": "drive", "args": []any{"t", "l1", "l2"}})
	require.NoError(t, err)
	assert.Equal(t, domain.Action{Operator: "drive", Args: []string{"t", "l1", "l2"}}, act)

	_, err = decodeStep(42)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteWorlds(t, dir, map[string]string{
		"w.md": testutils.WorldDoc(t, "", []string{"a - block", "b - block"}, []string{"(move a b)"}),
	})

	loader, err := Open(dir)
	require.NoError(t, err)

	corpus, err := loader.LoadCorpus(context.Background())
	require.NoError(t, err)
	require.Len(t, corpus.Worlds, 1)
	assert.Equal(t, "w", corpus.Worlds[0].Name)
}
