package ddg_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/serenelab/wellspring/pkg/adapters/ddg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"Heading": "Hydration",
	"AbstractText": "Water is important.",
	"AbstractURL": "https://example.org/water",
	"RelatedTopics": [
		{"Text": "Drinking water - daily intake", "FirstURL": "https://example.org/intake"},
		{"Topics": [
			{"Text": "Electrolytes", "FirstURL": "https://example.org/electrolytes"}
		]},
		{"Text": "Dehydration symptoms", "FirstURL": "https://example.org/dehydration"}
	]
}`

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	client := ddg.New(ddg.Config{BaseURL: srv.URL})
	results := client.Search(context.Background(), "hydration", 3)

	require.Len(t, results, 3)
	assert.Equal(t, "Hydration", results[0].Title)
	assert.Equal(t, "https://example.org/water", results[0].URL)
	assert.Equal(t, "Drinking water - daily intake", results[1].Title)
	assert.Equal(t, "Electrolytes", results[2].Title, "nested topic groups are flattened")
}

func TestClient_SearchRespectsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	client := ddg.New(ddg.Config{BaseURL: srv.URL})
	results := client.Search(context.Background(), "hydration", 1)
	assert.Len(t, results, 1)
}

func TestClient_SearchNeverRaises(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := ddg.New(ddg.Config{BaseURL: srv.URL})
	results := client.Search(context.Background(), "anything", 5)

	// Failure path: single diagnostic entry, never an error.
	require.Len(t, results, 1)
	assert.Equal(t, "search unavailable", results[0].Title)
	assert.NotEmpty(t, results[0].Snippet)
}
