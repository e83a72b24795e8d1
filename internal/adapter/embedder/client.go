// Package embedder is the HTTP client for the face-embedding sidecar. This
// is the only place raw image bytes cross the process boundary; the rest of
// the system works on feature vectors.
package embedder

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Abhivandan7/DashCash/internal/core/domain"
)

// Client talks to the embedding service's POST /v1/embeddings endpoint.
// The sidecar answers 422 when it finds no usable face in the image.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

type extractRequest struct {
	Image string `json:"image"`
}

type extractResponse struct {
	Embedding []float64 `json:"embedding"`
	Model     string    `json:"model"`
	Error     string    `json:"error"`
}

// Extract submits the image and returns the extracted template. Deadline
// expiry and transport failures come back as probe-extraction errors, never
// as a hang; a faceless image is domain.ErrNoFaceDetected.
func (c *Client) Extract(ctx context.Context, image []byte) (domain.Template, error) {
	if len(image) == 0 {
		return domain.Template{}, domain.ErrMissingField
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(extractRequest{Image: base64.StdEncoding.EncodeToString(image)})
	if err != nil {
		return domain.Template{}, domain.WrapBiometric(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/embeddings", bytes.NewReader(body))
	if err != nil {
		return domain.Template{}, domain.WrapBiometric(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Template{}, domain.WrapBiometric(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.Template{}, domain.WrapBiometric(err)
	}

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return domain.Template{}, domain.ErrNoFaceDetected
	case resp.StatusCode != http.StatusOK:
		return domain.Template{}, domain.WrapBiometric(fmt.Errorf("embedder returned %d: %s", resp.StatusCode, payload))
	}

	var out extractResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return domain.Template{}, domain.WrapBiometric(err)
	}
	if len(out.Embedding) == 0 {
		return domain.Template{}, domain.WrapBiometric(fmt.Errorf("embedder returned an empty vector"))
	}

	return domain.Template{Embedding: out.Embedding, Model: out.Model}, nil
}
