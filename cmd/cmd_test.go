package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/flashdeck/internal/card"
	"github.com/arcanaland/flashdeck/internal/config"
)

const deckWithDuplicate = `[
	{"id": 1, "title": "A", "category": "x", "difficulty": "y", "readTimeSec": 10, "content": ["a", "b", "c"]},
	{"id": 1, "title": "A again", "category": "x", "difficulty": "y", "readTimeSec": 10, "content": ["a", "b", "c"]}
]`

const twoCardDeck = `[
	{"id": "tcp", "title": "TCP handshake", "category": "networking", "difficulty": "easy", "readTimeSec": 30, "content": ["SYN", "SYN-ACK", "ACK"], "source": "RFC 793"},
	{"id": 2, "title": "OSI model", "category": "networking", "difficulty": "medium", "readTimeSec": 45, "content": ["L1", "L2", "L3", "L4"]}
]`

func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("FLASHDECK_LOG_LEVEL", "error")
	return dataHome
}

func writeDeck(t *testing.T, dir, name, body string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(io.Discard)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func TestValidate_reportsDuplicates(t *testing.T) {
	isolate(t)
	path := writeDeck(t, t.TempDir(), "deck.json", deckWithDuplicate)

	out, err := run(t, "validate", path)

	require.NoError(t, err)
	assert.Contains(t, out, "1 of 2 cards valid")
	assert.Contains(t, out, "1. 1: duplicate id")
}

func TestValidate_emptyDeck(t *testing.T) {
	isolate(t)
	path := writeDeck(t, t.TempDir(), "deck.json", `[]`)

	out, err := run(t, "validate", path)

	require.ErrorIs(t, err, card.ErrEmptyDeck)
	assert.Contains(t, out, "has no valid cards")
}

func TestValidate_missingSource(t *testing.T) {
	isolate(t)

	_, err := run(t, "validate", filepath.Join(t.TempDir(), "missing.json"))

	require.ErrorIs(t, err, card.ErrFetch)
}

func TestValidate_notAnArray(t *testing.T) {
	isolate(t)
	path := writeDeck(t, t.TempDir(), "deck.json", `{"cards": []}`)

	_, err := run(t, "validate", path)

	require.ErrorIs(t, err, card.ErrParse)
}

func TestShow(t *testing.T) {
	isolate(t)
	path := writeDeck(t, t.TempDir(), "deck.json", twoCardDeck)

	out, err := run(t, "show", "--src", path, "tcp")

	require.NoError(t, err)
	assert.Contains(t, out, "ID:   tcp")
	assert.Contains(t, out, "TCP handshake")
	assert.Contains(t, out, "1 / 2")
	assert.Contains(t, out, "Time 30s")

	out, err = run(t, "show", "--src", path, "2")
	require.NoError(t, err)
	assert.Contains(t, out, "OSI model")

	_, err = run(t, "show", "--src", path, "nope")
	assert.EqualError(t, err, "card not found: nope")
}

func TestDeckList(t *testing.T) {
	dataHome := isolate(t)
	library := filepath.Join(dataHome, "flashdeck", "decks")
	writeDeck(t, library, "networking.json", twoCardDeck)
	writeDeck(t, library, "dupes.json", deckWithDuplicate)
	writeDeck(t, library, "empty.json", `[]`)
	require.NoError(t, config.SetDefaultSource("networking"))

	out, err := run(t, "deck", "ls")

	require.NoError(t, err)
	assert.Contains(t, out, "* networking (2 cards) [DEFAULT]")
	assert.Contains(t, out, "  dupes (1 cards, 1 skipped)")
	assert.NotContains(t, out, "empty")
}

func TestDeckList_noLibrary(t *testing.T) {
	isolate(t)

	out, err := run(t, "deck", "ls")

	require.NoError(t, err)
	assert.Contains(t, out, "does not exist")
}

func TestDeckInitAndSetDefault(t *testing.T) {
	dataHome := isolate(t)

	out, err := run(t, "deck", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Deck library initialized at:")
	assert.FileExists(t, config.GetConfigFilePath())

	writeDeck(t, filepath.Join(dataHome, "flashdeck", "decks"), "networking.json", twoCardDeck)
	out, err = run(t, "deck", "set-default", "networking")
	require.NoError(t, err)
	assert.Contains(t, out, "Default deck set to: networking")

	src, err := config.GetDefaultSource()
	require.NoError(t, err)
	assert.Equal(t, "networking", src)

	_, err = run(t, "deck", "set-default", "missing")
	assert.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	isolate(t)

	out, err := run(t, "config", "path")

	require.NoError(t, err)
	assert.Equal(t, config.GetConfigFilePath()+"\n", out)
}

func TestConfigShow_envOverride(t *testing.T) {
	isolate(t)
	t.Setenv("FLASHDECK_STYLE", "stack")

	out, err := run(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, `style = "stack"`)
}

func TestSourceFrom(t *testing.T) {
	isolate(t)
	cfg := config.Default()

	assert.Equal(t, "a.json", sourceFrom([]string{"a.json"}, "b.json", cfg))
	assert.Equal(t, "b.json", sourceFrom(nil, "b.json", cfg))
	assert.Equal(t, cfg.DefaultSource, sourceFrom(nil, "", cfg))
}
