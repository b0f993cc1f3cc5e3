package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "networking.json"), []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "algebra.json"), []byte(`[{"id":1}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`skip`), 0o644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(New(dir, logger).Router())
	t.Cleanup(ts.Close)
	return ts, dir
}

func TestListDecks(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/decks")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

	var decks []DeckInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decks))
	require.Len(t, decks, 2)
	assert.Equal(t, "algebra", decks[0].Name)
	assert.Equal(t, "/decks/algebra.json", decks[0].Path)
	assert.Equal(t, "networking", decks[1].Name)
}

func TestGetDeck(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, path := range []string{"/decks/algebra", "/decks/algebra.json"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
		assert.JSONEq(t, `[{"id":1}]`, string(body))
	}
}

func TestGetDeck_notFound(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, path := range []string{"/decks/missing", "/decks/.hidden"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/decks", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

type failingWriter struct {
	*httptest.ResponseRecorder
}

func (w failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestGetDeck_logsWriteError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "algebra.json"), []byte(`[]`), 0o644))
	var logs bytes.Buffer
	router := New(dir, slog.New(slog.NewTextHandler(&logs, nil))).Router()

	req := httptest.NewRequest(http.MethodGet, "/decks/algebra", nil)
	router.ServeHTTP(failingWriter{httptest.NewRecorder()}, req)

	assert.Contains(t, logs.String(), "writing deck")
	assert.Contains(t, logs.String(), "connection reset")
}
