package photos

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoOpService(t *testing.T) {
	s := NewNoOp(slog.New(slog.NewTextHandler(io.Discard, nil)))

	url, err := s.Upload(context.Background(), "car.jpg", []byte("fake"))
	require.NoError(t, err)
	assert.Empty(t, url)

	assert.NoError(t, s.Delete(context.Background(), "https://photos.test/x.jpg"))
}

func TestMinioService_ObjectKey(t *testing.T) {
	s := &MinioService{bucket: "motors"}

	tests := []struct {
		name    string
		url     string
		wantKey string
		wantOK  bool
	}{
		{"our bucket", "https://cdn.test/motors/photos/abc.jpg", "photos/abc.jpg", true},
		{"foreign url", "https://elsewhere.test/other/photos/abc.jpg", "", false},
		{"bucket with empty key", "https://cdn.test/motors/", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := s.objectKey(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
