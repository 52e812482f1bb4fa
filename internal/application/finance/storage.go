package finance

import "context"

// DocumentStorage stores uploaded payment documents (receipt scans, bank
// slips) and returns the public URL the payment record keeps.
type DocumentStorage interface {
	// Upload stores data under key and returns the URL it is served from
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes a stored object. Missing objects are not an error.
	Delete(ctx context.Context, key string) error
}
