package ports

import (
	"context"
	"io"

	"github.com/aniket045123/craftmyresume/internal/domain"
)

// ObjectStore is the bucket holding uploaded resumes.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	List(ctx context.Context, prefix string) ([]domain.StoredObject, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	Ping(ctx context.Context) error
}
