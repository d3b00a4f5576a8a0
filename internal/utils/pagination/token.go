package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// DefaultLimit and MaxLimit bound page sizes for every list endpoint.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ClampLimit applies the default and upper bound to a requested page size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// LedgerCursor identifies the last ledger row of a page. Rows are ordered by
// date, creation time and id, all descending.
type LedgerCursor struct {
	Date          time.Time
	CreatedAt     time.Time
	TransactionID string
}

// EncodeToken creates an opaque page token from a ledger cursor.
func EncodeToken(c LedgerCursor) string {
	tokenStr := strings.Join([]string{c.Date.Format(timeFormat), c.CreatedAt.Format(timeFormat), c.TransactionID}, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (LedgerCursor, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return LedgerCursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return LedgerCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return LedgerCursor{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return LedgerCursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return LedgerCursor{Date: date, CreatedAt: createdAt, TransactionID: parts[2]}, nil
}
