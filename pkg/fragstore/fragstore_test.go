package fragstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printforge/stlsplit/pkg/geom"
	"github.com/printforge/stlsplit/pkg/splitter"
)

func testFragments() []splitter.Fragment {
	return []splitter.Fragment{
		{PartIndex: 1, Mesh: geom.BoxMesh(geom.Vec{}, geom.Vec{X: 10, Y: 10, Z: 5})},
		{PartIndex: 2, Mesh: geom.BoxMesh(geom.Vec{X: 10}, geom.Vec{X: 20, Y: 10, Z: 5})},
	}
}

func TestFragmentName(t *testing.T) {
	assert.Equal(t, "benchy_splt-01.stl", FragmentName("benchy", 1))
	assert.Equal(t, "benchy_splt-12.stl", FragmentName("benchy", 12))
}

func TestWriteFragments(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer store.Cleanup()

	files, err := store.WriteFragments("benchy", testFragments())
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "benchy_splt-01.stl", filepath.Base(files[0]))
	assert.Equal(t, "benchy_splt-02.stl", filepath.Base(files[1]))

	for _, path := range files {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(84), "fragment %s should hold triangles", path)
	}
	assert.Equal(t, files, store.Files())
}

func TestCleanupRemovesEverything(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	files, err := store.WriteFragments("benchy", testFragments())
	require.NoError(t, err)

	store.Cleanup()

	for _, path := range files {
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err), "file %s should be gone", path)
	}
	_, err = os.Stat(store.Dir())
	assert.True(t, os.IsNotExist(err), "job dir should be gone")
	assert.Empty(t, store.Files())
}

func TestCleanupRemovesUnrecordedFiles(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	// A write that failed mid-encode leaves a partial file the store
	// never recorded. Cleanup still has to take the whole directory
	// with it.
	stray := filepath.Join(store.Dir(), FragmentName("benchy", 1))
	require.NoError(t, os.WriteFile(stray, []byte("partial"), 0o644))

	store.Cleanup()

	_, err = os.Stat(store.Dir())
	assert.True(t, os.IsNotExist(err), "job dir should be gone despite unrecorded files")
}

func TestCleanupSwallowsMissingFiles(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	files, err := store.WriteFragments("benchy", testFragments())
	require.NoError(t, err)

	// Someone deleted a fragment out from under the store; Cleanup
	// must not panic or complain.
	require.NoError(t, os.Remove(files[0]))
	store.Cleanup()
}

func TestStoresAreJobScoped(t *testing.T) {
	base := t.TempDir()
	a, err := NewStore(base)
	require.NoError(t, err)
	b, err := NewStore(base)
	require.NoError(t, err)
	assert.NotEqual(t, a.Dir(), b.Dir())
}
