// Package photos stores listing and profile images in object storage
// and hands back public URLs.
package photos

import "context"

// Service uploads raw image bytes and deletes previously uploaded
// images by their public URL.
type Service interface {
	// Upload stores the image and returns its public URL. The original
	// filename only contributes its extension; object keys are random.
	Upload(ctx context.Context, filename string, data []byte) (string, error)
	// Delete removes a previously uploaded image. Deleting an unknown
	// URL is not an error.
	Delete(ctx context.Context, url string) error
}
