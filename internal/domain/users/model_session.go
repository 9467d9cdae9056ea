package users

import "time"

// Session is the server-side fallback credential: an opaque id held in a
// cookie that resolves to a user without a bearer token.
type Session struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"not null;index:idx_sessions_user_id"`
	CreatedAt time.Time
	ExpiresAt time.Time
}
