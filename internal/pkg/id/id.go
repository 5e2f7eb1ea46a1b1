package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs are lexicographically sortable
// by creation time, which keeps message-log entries and S3 object keys
// in arrival order.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
