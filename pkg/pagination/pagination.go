package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is the page size applied when the caller sends none.
	DefaultLimit = 20
	// MaxLimit caps any single page of order history or admin listings.
	MaxLimit = 100
)

// Params carries the limit and opaque cursor parsed from a request.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor pins a position in a (created_at, id) keyset ordering.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// NormalizeLimit clamps a requested page size into the allowed range.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// EncodeCursor packs a cursor into an opaque base64 token. The payload is
// unix nanoseconds plus the row id, so decode round-trips are exact.
func EncodeCursor(c Cursor) string {
	payload := fmt.Sprintf("%d|%s", c.CreatedAt.UTC().UnixNano(), c.ID)
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

// ParseCursor unpacks an EncodeCursor token. An empty token yields a nil
// cursor, meaning start from the newest row.
func ParseCursor(token string) (*Cursor, error) {
	if strings.TrimSpace(token) == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("malformed cursor")
	}

	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor timestamp: %w", err)
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, fmt.Errorf("malformed cursor id: %w", err)
	}

	return &Cursor{CreatedAt: time.Unix(0, nanos).UTC(), ID: id}, nil
}
