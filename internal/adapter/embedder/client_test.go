package embedder

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhivandan7/DashCash/internal/core/domain"
)

func TestExtract_Success(t *testing.T) {
	var gotPath string
	var gotImage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotImage = req["image"]
		json.NewEncoder(w).Encode(map[string]any{
			"embedding": []float64{0.1, 0.2, 0.3},
			"model":     "vgg-face",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	tpl, err := c.Extract(context.Background(), []byte("image-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "/v1/embeddings", gotPath)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("image-bytes")), gotImage)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, tpl.Embedding)
	assert.Equal(t, "vgg-face", tpl.Model)
}

func TestExtract_NoFace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "no face found"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Extract(context.Background(), []byte("blank-wall"))
	assert.ErrorIs(t, err, domain.ErrNoFaceDetected)
}

func TestExtract_ServerErrorIsProbeExtractionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Extract(context.Background(), []byte("image"))
	assert.ErrorIs(t, err, domain.ErrProbeExtraction)
}

func TestExtract_TimeoutIsProbeExtractionFailure(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer slow.Close()

	c := New(slow.URL, 20*time.Millisecond)
	start := time.Now()
	_, err := c.Extract(context.Background(), []byte("image"))
	assert.ErrorIs(t, err, domain.ErrProbeExtraction)
	assert.Less(t, time.Since(start), 150*time.Millisecond, "deadline must cut the call short")
}

func TestExtract_EmptyImage(t *testing.T) {
	c := New("http://unused", time.Second)
	_, err := c.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestExtract_EmptyVectorRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"embedding": []float64{}})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Extract(context.Background(), []byte("image"))
	assert.ErrorIs(t, err, domain.ErrProbeExtraction)
}
