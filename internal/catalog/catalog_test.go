package catalog

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errpkg "github.com/YukiMaitani/tcgp-card-data/internal/errors"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testManifest() *Manifest {
	return &Manifest{
		Version: "2026-08-01",
		Sets: []Set{
			{
				Code: "A1",
				Name: "Genetic Apex",
				Cards: []Card{
					{Number: "001", Name: "Bulbasaur"},
					{Number: "002", Name: "Ivysaur"},
				},
			},
			{
				Code: "A2",
				Name: "Space-Time Smackdown",
				Cards: []Card{
					{Number: "001", Name: "Oddish"},
				},
			},
		},
	}
}

const manifestJSON = `{
	"version": "2026-08-01",
	"sets": [
		{
			"code": "A1",
			"name": "Genetic Apex",
			"cards": [
				{"number": "001", "name": "Bulbasaur"},
				{"number": "002", "name": "Ivysaur"}
			]
		}
	]
}`

func TestClient_FetchManifest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.WriteString(w, manifestJSON); err != nil {
			t.Fatalf("failed to write manifest: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, newTestLogger())
	manifest, err := client.FetchManifest(context.Background())

	require.NoError(t, err)
	require.Len(t, manifest.Sets, 1)
	assert.Equal(t, "A1", manifest.Sets[0].Code)
	assert.Len(t, manifest.Sets[0].Cards, 2)
}

func TestClient_FetchManifest_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, newTestLogger())
	_, err := client.FetchManifest(context.Background())

	assert.ErrorIs(t, err, errpkg.ErrCatalogUnavailable)
}

func TestClient_FetchManifest_InvalidManifest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.WriteString(w, `{"sets": [{"code": "A1"}]}`); err != nil {
			t.Fatalf("failed to write manifest: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, newTestLogger())
	_, err := client.FetchManifest(context.Background())

	assert.Error(t, err)
	assert.NotErrorIs(t, err, errpkg.ErrCatalogUnavailable)
}

func TestBuildTasks_AllSetsAllLocales(t *testing.T) {
	tasks, err := BuildTasks(testManifest(), "https://cdn.example.com/cards", []string{"en", "ja"}, nil)
	require.NoError(t, err)

	// 3 cards x 2 locales
	require.Len(t, tasks, 6)

	seen := make(map[string]bool)
	for _, task := range tasks {
		assert.False(t, seen[task.Destination], "duplicate destination %s", task.Destination)
		seen[task.Destination] = true
	}

	first := tasks[0]
	assert.Equal(t, "https://cdn.example.com/cards/en/A1/001.webp", first.Source)
	assert.Equal(t, "A1/001 (en)", first.Label)
}

func TestBuildTasks_SetFilter(t *testing.T) {
	tasks, err := BuildTasks(testManifest(), "https://cdn.example.com/cards", []string{"en"}, []string{"A2"})
	require.NoError(t, err)

	require.Len(t, tasks, 1)
	assert.Equal(t, "A2/001 (en)", tasks[0].Label)
}

func TestBuildTasks_UnknownSet(t *testing.T) {
	_, err := BuildTasks(testManifest(), "https://cdn.example.com/cards", []string{"en"}, []string{"ZZ"})
	assert.ErrorIs(t, err, errpkg.ErrSetNotFound)
}
