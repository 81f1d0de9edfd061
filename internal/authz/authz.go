// Package authz holds the ownership check applied before mutating user data.
package authz

import (
	ierr "dearmind-backend/internal/errors"
)

type Owned interface {
	OwnerID() string
}

func Allowed(record Owned, requesterID string) bool {
	return record != nil && requesterID != "" && record.OwnerID() == requesterID
}

// Check returns ierr.NotFound when the requester does not own record, so that a
// foreign document looks exactly like a missing one.
func Check(record Owned, requesterID string, what string) error {
	if !Allowed(record, requesterID) {
		return ierr.NotFoundf("%s not found", what)
	}
	return nil
}
