package tutorial

import (
	"math/rand/v2"
	"strings"

	"github.com/AntonStoeckl/queryable-go/example/shared/core"
)

const (
	usernameSuffixLength = 5
	alphanumerics        = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RandomUsername returns "User_" followed by 5 random alphanumerics.
// Usernames are unique in the schema, so every insert needs a fresh one.
func RandomUsername() string {
	b := strings.Builder{}
	b.WriteString(core.UsernamePrefix)

	for range usernameSuffixLength {
		b.WriteByte(alphanumerics[rand.IntN(len(alphanumerics))])
	}

	return b.String()
}
