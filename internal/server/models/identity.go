package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UserID is the canonical textual form of a user identifier: a lower-case,
// hyphenated UUID. Two UserIDs are the same user iff they are ==.
type UserID string

// NewUserID returns a fresh random identifier.
func NewUserID() UserID {
	return UserID(uuid.NewString())
}

// ParseUserID normalizes s into canonical form. Upper-case, braced and
// urn:uuid: forms are accepted; anything that is not a UUID is rejected.
func ParseUserID(s string) (UserID, error) {
	id, err := ParseID(s)
	if err != nil {
		return "", err
	}
	return UserID(id), nil
}

func (id UserID) String() string {
	return string(id)
}

// ParseID normalizes any entity identifier (users and products share the
// same UUID representation).
func ParseID(s string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid identifier %q: %w", s, err)
	}
	return u.String(), nil
}

// Identity is the verified caller of a single request. It carries nothing
// but the user id recovered from the credential.
type Identity struct {
	UserID UserID
}
