package attachments

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// FilesystemStore writes decoded attachments as files below a root directory.
type FilesystemStore struct {
	root string
}

var _ portsrepo.AttachmentStore = (*FilesystemStore)(nil)

// NewFilesystemStore creates root if needed.
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create attachment directory %s: %w", root, err)
	}
	return &FilesystemStore{root: root}, nil
}

// Save decodes the payload and writes it under a fresh name. Data URLs
// ("data:application/pdf;base64,...") are accepted; the media type is ignored.
func (s *FilesystemStore) Save(ctx context.Context, base64Payload string) (string, error) {
	payload := strings.TrimSpace(base64Payload)
	if i := strings.Index(payload, ";base64,"); strings.HasPrefix(payload, "data:") && i >= 0 {
		payload = payload[i+len(";base64,"):]
	}
	if payload == "" {
		return "", apperrors.NewValidationError("attachment is empty")
	}

	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", apperrors.NewValidationError("attachment is not valid base64")
	}

	name := uuid.NewString()
	path := filepath.Join(s.root, name)
	if err := os.WriteFile(path, content, 0o640); err != nil {
		slog.ErrorContext(ctx, "Failed to write attachment", "path", path, "error", err)
		return "", apperrors.NewAppError(500, "failed to store attachment", err)
	}
	return path, nil
}
