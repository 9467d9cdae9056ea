// Package store holds the durable state of the entitlement core: the user
// directory, the usage ledger and the session fallback. All stores are
// constructed around an injected *gorm.DB; nothing here caches across
// requests, because plan changes arrive asynchronously via webhook and must
// be visible to the very next quota check.
package store

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrCustomerRefConflict means a user already carries a different
	// Stripe customer id. Setting the same value twice is fine (retried
	// checkout creation); changing it is not.
	ErrCustomerRefConflict = errors.New("stripe customer reference already set to a different value")
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
