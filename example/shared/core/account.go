package core

import (
	"github.com/google/uuid"
)

// UsernamePrefix starts every generated username.
const UsernamePrefix = "User_"

// Account represents the account type of the tutorial schema.
type Account struct {
	Username string
	ID       uuid.UUID
}

// AccountWithInviter is an Account together with the optional account that invited it
// and the number of posts it authored, which the database computes.
type AccountWithInviter struct {
	Username  string
	ID        uuid.UUID
	Inviter   *Account
	PostCount int32
}

// HasInviter reports whether the account was invited by another account.
func (a AccountWithInviter) HasInviter() bool {
	return a.Inviter != nil
}
