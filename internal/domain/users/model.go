package users

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

type User struct {
	ID      string `gorm:"primaryKey"`
	Email   string `gorm:"not null;uniqueIndex:idx_users_email"`
	Name    string
	Picture string
	Plan    string `gorm:"type:varchar(10);not null;default:'free'"`

	StripeCustomerID     *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`
	StripeSubscriptionID *string `gorm:"column:stripe_subscription_id"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewID mints an opaque user id. The usr_ prefix keeps ids self-describing
// in logs and Stripe metadata.
func NewID() string {
	return fmt.Sprintf("usr_%x", [16]byte(uuid.New()))
}

func (u User) IsPro() bool {
	return u.Plan == PlanPro
}
