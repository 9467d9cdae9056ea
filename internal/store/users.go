package store

import (
	"context"
	"fmt"
	"strings"

	"vividmedi-backend/internal/domain/users"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// UpsertByEmail returns the user for email, creating a free-plan record if
// none exists. Display fields are refreshed from the identity provider when
// non-empty. The unique index on email makes concurrent sign-ins for the
// same address collapse onto one row.
func (s *UserStore) UpsertByEmail(ctx context.Context, email, name, picture string) (users.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return users.User{}, fmt.Errorf("missing email")
	}

	candidate := users.User{
		ID:      users.NewID(),
		Email:   email,
		Name:    name,
		Picture: picture,
		Plan:    users.PlanFree,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(&candidate).Error
	if err != nil {
		return users.User{}, err
	}

	var user users.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return users.User{}, translate(err)
	}

	refresh := map[string]interface{}{}
	if name != "" && name != user.Name {
		refresh["name"] = name
	}
	if picture != "" && picture != user.Picture {
		refresh["picture"] = picture
	}
	if len(refresh) > 0 {
		if err := s.db.WithContext(ctx).Model(&users.User{}).
			Where("id = ?", user.ID).
			Updates(refresh).Error; err != nil {
			return users.User{}, err
		}
		if name != "" {
			user.Name = name
		}
		if picture != "" {
			user.Picture = picture
		}
	}

	return user, nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (users.User, error) {
	var user users.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return users.User{}, translate(err)
	}
	return user, nil
}

func (s *UserStore) GetByStripeCustomerID(ctx context.Context, customerID string) (users.User, error) {
	var user users.User
	if err := s.db.WithContext(ctx).
		Where("stripe_customer_id = ?", customerID).
		First(&user).Error; err != nil {
		return users.User{}, translate(err)
	}
	return user, nil
}

// SetStripeCustomerID links a user to a Stripe customer exactly once.
// Calling it again with the same value is a no-op, so a retried checkout
// creation is safe; a different value is rejected.
func (s *UserStore) SetStripeCustomerID(ctx context.Context, userID, customerID string) error {
	res := s.db.WithContext(ctx).Model(&users.User{}).
		Where("id = ? AND (stripe_customer_id IS NULL OR stripe_customer_id = ?)", userID, customerID).
		Update("stripe_customer_id", customerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var user users.User
		if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
			return translate(err)
		}
		return ErrCustomerRefConflict
	}
	return nil
}

// UpgradeToPro sets plan=pro and opportunistically fills the Stripe refs
// when provided. Replayed webhook deliveries land here repeatedly; writing
// absolute state makes the repeat a no-op in effect.
func (s *UserStore) UpgradeToPro(ctx context.Context, userID, customerID, subscriptionID string) error {
	updates := map[string]interface{}{"plan": users.PlanPro}
	if customerID != "" {
		updates["stripe_customer_id"] = customerID
	}
	if subscriptionID != "" {
		updates["stripe_subscription_id"] = subscriptionID
	}

	res := s.db.WithContext(ctx).Model(&users.User{}).
		Where("id = ?", userID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DowngradeToFree is invoked only for confirmed terminal subscription
// states reported by Stripe.
func (s *UserStore) DowngradeToFree(ctx context.Context, userID string) error {
	res := s.db.WithContext(ctx).Model(&users.User{}).
		Where("id = ?", userID).
		Update("plan", users.PlanFree)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
