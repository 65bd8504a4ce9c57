package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadSeed(t *testing.T) {
	people, err := loadSeed(writeFile(t, `
- name: Zoe
  age: 20
  favoriteFoods: [burrito, tacos]
- name: Adam
  age: 41
  favoriteFoods: [soup]
`))
	require.NoError(t, err)
	require.Len(t, people, 2)
	require.Equal(t, "Zoe", people[0].Name)
	require.Equal(t, []string{"burrito", "tacos"}, people[0].FavoriteFoods)
	require.True(t, people[0].ID.IsZero())
}

func TestLoadSeed_Rejects(t *testing.T) {
	_, err := loadSeed(writeFile(t, "[]"))
	require.Error(t, err)

	_, err = loadSeed(writeFile(t, "- age: 3\n"))
	require.Error(t, err)

	_, err = loadSeed(writeFile(t, "name: [unclosed"))
	require.Error(t, err)

	_, err = loadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadPipelineInput_KeepsDefaults(t *testing.T) {
	in, err := loadPipelineInput(writeFile(t, "queryFood: tacos\n"))
	require.NoError(t, err)
	require.Equal(t, "tacos", in.QueryFood)
	require.Equal(t, "João", in.Name)
	require.Len(t, in.People, 3)
}
