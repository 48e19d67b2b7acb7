package photos

import (
	"context"
	"log/slog"
)

// NoOpService implements Service without any backing storage. It is
// used when no object storage endpoint is configured, for development
// and tests.
type NoOpService struct {
	log *slog.Logger
}

// NewNoOp creates a photo service that discards uploads with a log
// message.
func NewNoOp(log *slog.Logger) *NoOpService {
	return &NoOpService{log: log}
}

// Upload discards the image and returns an empty URL.
func (s *NoOpService) Upload(_ context.Context, filename string, data []byte) (string, error) {
	s.log.Debug("photo storage disabled, discarding upload",
		"filename", filename,
		"size", len(data),
	)
	return "", nil
}

// Delete does nothing.
func (s *NoOpService) Delete(_ context.Context, url string) error {
	s.log.Debug("photo storage disabled, skipping delete", "url", url)
	return nil
}
