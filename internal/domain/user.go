package domain

import (
	"time"
)

// User is a Progressly account as seen by this api. Identity itself is managed elsewhere.
type User struct {
	UserID      string
	FirstSeenAt time.Time
	LastSeenAt  time.Time
	SeenCount   int64
}

func (u User) IsFirstVisit() bool {
	return u.SeenCount == 1
}
