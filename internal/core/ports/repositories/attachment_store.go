package repositories

import "context"

// AttachmentStore keeps voucher attachments. The returned path is opaque to callers.
type AttachmentStore interface {
	Save(ctx context.Context, base64Payload string) (string, error)
}
