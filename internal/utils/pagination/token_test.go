package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	cursor := LedgerCursor{
		Date:          time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		CreatedAt:     time.Date(2024, 6, 2, 14, 30, 45, 123456789, time.UTC),
		TransactionID: "0d5c7a7e-0a9b-4f43-9a3e-5b1de3c6a001",
	}

	token := EncodeToken(cursor)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, cursor.Date.Equal(decoded.Date))
	assert.True(t, cursor.CreatedAt.Equal(decoded.CreatedAt), "created_at must keep nanoseconds")
	assert.Equal(t, cursor.TransactionID, decoded.TransactionID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, err := DecodeToken("not base64 !!")
	assert.Error(t, err)

	_, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("2024-06-02T00:00:00Z|only-two")))
	assert.Error(t, err)

	_, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("yesterday|2024-06-02T00:00:00Z|id")))
	assert.Error(t, err)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, 5, ClampLimit(5))
	assert.Equal(t, MaxLimit, ClampLimit(1000))
}
