package store

import (
	"context"
	"time"

	"vividmedi-backend/internal/domain/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const sessionTTL = 30 * 24 * time.Hour

type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Create(ctx context.Context, userID string) (users.Session, error) {
	now := time.Now().UTC()
	sess := users.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := s.db.WithContext(ctx).Create(&sess).Error; err != nil {
		return users.Session{}, err
	}
	return sess, nil
}

// GetUserID resolves an opaque session id to a user id. Expired or unknown
// sessions report ErrNotFound; the Actor Resolver turns that into a guest.
func (s *SessionStore) GetUserID(ctx context.Context, sessionID string) (string, error) {
	var sess users.Session
	if err := s.db.WithContext(ctx).Where("id = ?", sessionID).First(&sess).Error; err != nil {
		return "", translate(err)
	}
	if time.Now().After(sess.ExpiresAt) {
		return "", ErrNotFound
	}
	return sess.UserID, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.db.WithContext(ctx).Where("id = ?", sessionID).Delete(&users.Session{}).Error
}
