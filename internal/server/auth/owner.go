package auth

import (
	"github.com/dmitrijs2005/bazaarbuddy/internal/common"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
)

// Authorize lets caller mutate a resource recorded as owned by owner.
// Both sides are canonical ids, so plain equality is enough. The returned
// error never names the owner.
func Authorize(owner models.UserID, caller models.Identity) error {
	if owner == "" || owner != caller.UserID {
		return common.ErrNotOwner
	}
	return nil
}
