package domain

import "time"

// Challenge is an issued email-verification code awaiting confirmation.
// At most one exists per chat; re-entering the email step overwrites it.
type Challenge struct {
	ChatID   int64
	Code     int // 6 digits, in [100000, 999999]
	Email    string
	IssuedAt time.Time
}
