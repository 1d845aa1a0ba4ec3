package policy_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/library-management/library/internal/errs"
	"github.com/Astemirdum/library-management/library/internal/model"
	"github.com/Astemirdum/library-management/library/internal/policy"
)

func TestCanPerform(t *testing.T) {
	t.Parallel()
	self, other := uuid.New(), uuid.New()

	tests := []struct {
		name     string
		role     model.Role
		action   policy.Action
		resource policy.Resource
		owner    policy.Owner
		want     bool
	}{
		{"librarian creates book", model.RoleLibrarian, policy.ActionCreate, policy.ResourceBook, uuid.Nil, true},
		{"librarian deletes book", model.RoleLibrarian, policy.ActionDelete, policy.ResourceBook, uuid.Nil, true},
		{"librarian reads any borrowing", model.RoleLibrarian, policy.ActionRead, policy.ResourceBorrowing, other, true},
		{"librarian returns borrowing", model.RoleLibrarian, policy.ActionUpdate, policy.ResourceBorrowing, other, true},
		{"librarian cannot delete borrowing", model.RoleLibrarian, policy.ActionDelete, policy.ResourceBorrowing, other, false},
		{"librarian reads user", model.RoleLibrarian, policy.ActionRead, policy.ResourceUser, other, true},
		{"librarian dashboard", model.RoleLibrarian, policy.ActionAccess, policy.ResourceLibrarianDashboard, uuid.Nil, true},
		{"librarian not member dashboard", model.RoleLibrarian, policy.ActionAccess, policy.ResourceMemberDashboard, uuid.Nil, false},

		{"member reads book", model.RoleMember, policy.ActionRead, policy.ResourceBook, uuid.Nil, true},
		{"member searches book", model.RoleMember, policy.ActionSearch, policy.ResourceBook, uuid.Nil, true},
		{"member cannot create book", model.RoleMember, policy.ActionCreate, policy.ResourceBook, uuid.Nil, false},
		{"member cannot update book", model.RoleMember, policy.ActionUpdate, policy.ResourceBook, uuid.Nil, false},
		{"member borrows for self", model.RoleMember, policy.ActionCreate, policy.ResourceBorrowing, self, true},
		{"member cannot borrow for other", model.RoleMember, policy.ActionCreate, policy.ResourceBorrowing, other, false},
		{"member reads own borrowing", model.RoleMember, policy.ActionRead, policy.ResourceBorrowing, self, true},
		{"member cannot read other borrowing", model.RoleMember, policy.ActionRead, policy.ResourceBorrowing, other, false},
		{"member lists borrowings", model.RoleMember, policy.ActionRead, policy.ResourceBorrowing, uuid.Nil, true},
		{"member cannot return", model.RoleMember, policy.ActionUpdate, policy.ResourceBorrowing, self, false},
		{"member cannot read user", model.RoleMember, policy.ActionRead, policy.ResourceUser, self, false},
		{"member dashboard", model.RoleMember, policy.ActionAccess, policy.ResourceMemberDashboard, uuid.Nil, true},
		{"member not librarian dashboard", model.RoleMember, policy.ActionAccess, policy.ResourceLibrarianDashboard, uuid.Nil, false},

		{"unknown role reads book", model.Role(0), policy.ActionRead, policy.ResourceBook, uuid.Nil, true},
		{"unknown role borrows", model.Role(0), policy.ActionCreate, policy.ResourceBorrowing, self, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, policy.CanPerform(tt.role, self, tt.action, tt.resource, tt.owner))
		})
	}
}

func TestAuthorize(t *testing.T) {
	t.Parallel()
	member := &model.Caller{ID: uuid.New(), Role: model.RoleMember}

	require.NoError(t, policy.Authorize(nil, policy.ActionSearch, policy.ResourceBook, uuid.Nil))
	require.NoError(t, policy.Authorize(nil, policy.ActionRead, policy.ResourceBook, uuid.Nil))
	require.ErrorIs(t, policy.Authorize(nil, policy.ActionCreate, policy.ResourceBook, uuid.Nil), errs.ErrUnauthenticated)
	require.ErrorIs(t, policy.Authorize(nil, policy.ActionAccess, policy.ResourceMemberDashboard, uuid.Nil), errs.ErrUnauthenticated)
	require.ErrorIs(t, policy.Authorize(member, policy.ActionCreate, policy.ResourceBook, uuid.Nil), errs.ErrForbidden)
	require.NoError(t, policy.Authorize(member, policy.ActionCreate, policy.ResourceBorrowing, member.ID))
}
