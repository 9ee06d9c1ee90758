package local

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKV_SetGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	kv, err := OpenKV(path)
	require.NoError(t, err)

	_, ok := kv.Get("Luanda:employees")
	assert.False(t, ok)

	require.NoError(t, kv.Set("Luanda:employees", `{"state":{},"version":1}`))
	data, ok := kv.Get("Luanda:employees")
	assert.True(t, ok)
	assert.Equal(t, `{"state":{},"version":1}`, data)

	require.NoError(t, kv.Delete("Luanda:employees"))
	_, ok = kv.Get("Luanda:employees")
	assert.False(t, ok)
}

func TestKV_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	kv, err := OpenKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set("Benguela:branches", "abc"))
	require.NoError(t, kv.Set("selectedProvince", "Benguela"))

	again, err := OpenKV(path)
	require.NoError(t, err)

	data, ok := again.Get("Benguela:branches")
	assert.True(t, ok)
	assert.Equal(t, "abc", data)

	province, ok := again.Get("selectedProvince")
	assert.True(t, ok)
	assert.Equal(t, "Benguela", province)
}

func TestKV_MissingFileStartsEmpty(t *testing.T) {
	kv, err := OpenKV(filepath.Join(t.TempDir(), "nope", "data.json"))
	require.NoError(t, err)
	assert.Empty(t, kv.Keys())
}

func TestKV_CorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{corrupto"), 0600))

	_, err := OpenKV(path)
	assert.Error(t, err)
}

func TestKV_Keys(t *testing.T) {
	kv, err := OpenKV(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	require.NoError(t, kv.Set("a", "1"))
	require.NoError(t, kv.Set("b", "2"))

	assert.ElementsMatch(t, []string{"a", "b"}, kv.Keys())
}
