package ports

import (
	"context"

	"github.com/Abhivandan7/DashCash/internal/core/domain"
)

// EmbeddingProvider turns a raw image into a biometric template. It is the
// only boundary where pixel data is interpreted; the core never inspects
// image bytes. Implementations return domain.ErrNoFaceDetected when the
// image holds no usable face, and a domain.ErrProbeExtraction-kinded error
// for transport failures or deadline expiry.
type EmbeddingProvider interface {
	Extract(ctx context.Context, image []byte) (domain.Template, error)
}
