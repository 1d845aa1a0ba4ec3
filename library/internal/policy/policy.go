// Package policy answers "may this caller do that". It holds no state and
// loads nothing: callers pass the resource owner when it matters.
package policy

import (
	"github.com/google/uuid"

	"github.com/Astemirdum/library-management/library/internal/errs"
	"github.com/Astemirdum/library-management/library/internal/model"
)

type Action uint8

const (
	ActionRead Action = iota + 1
	ActionCreate
	ActionUpdate
	ActionDelete
	ActionSearch
	ActionAccess
)

type Resource uint8

const (
	ResourceBook Resource = iota + 1
	ResourceBorrowing
	ResourceUser
	ResourceLibrarianDashboard
	ResourceMemberDashboard
)

// Owner is the user a resource belongs to. uuid.Nil means the resource has
// no owner or the caller is asking about the collection.
type Owner = uuid.UUID

// public lists what anyone, signed in or not, may do.
func public(action Action, resource Resource) bool {
	return resource == ResourceBook && (action == ActionSearch || action == ActionRead)
}

// CanPerform is the capability table.
func CanPerform(role model.Role, userID uuid.UUID, action Action, resource Resource, owner Owner) bool {
	if public(action, resource) {
		return true
	}
	switch role {
	case model.RoleLibrarian:
		switch resource {
		case ResourceBook:
			return action == ActionCreate || action == ActionRead || action == ActionUpdate || action == ActionDelete
		case ResourceBorrowing:
			return action == ActionCreate || action == ActionRead || action == ActionUpdate
		case ResourceUser:
			return action == ActionRead
		case ResourceLibrarianDashboard:
			return action == ActionAccess
		}
		return false
	case model.RoleMember:
		switch resource {
		case ResourceBorrowing:
			if action != ActionCreate && action != ActionRead {
				return false
			}
			return owner == uuid.Nil || owner == userID
		case ResourceMemberDashboard:
			return action == ActionAccess
		}
		return false
	}
	return false
}

// Authorize wraps CanPerform with the error kinds the boundary needs:
// ErrUnauthenticated for anonymous callers, ErrForbidden otherwise.
func Authorize(caller *model.Caller, action Action, resource Resource, owner Owner) error {
	if caller == nil {
		if public(action, resource) {
			return nil
		}
		return errs.ErrUnauthenticated
	}
	if !CanPerform(caller.Role, caller.ID, action, resource, owner) {
		return errs.ErrForbidden
	}
	return nil
}
