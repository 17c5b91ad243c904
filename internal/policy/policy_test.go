package policy

import (
	"testing"

	"tobacco/internal/model"

	"github.com/stretchr/testify/assert"
)

func userWith(id int64, authorities ...model.Authority) *model.User {
	user := &model.User{ID: id}
	for _, a := range authorities {
		user.Authorities = append(user.Authorities, model.UserAuthority{UserID: id, Authority: a})
	}
	return user
}

func inGroups(user *model.User, groupIDs ...int64) *model.User {
	for _, id := range groupIDs {
		user.Groups = append(user.Groups, &model.Group{ID: id})
	}
	return user
}

func TestCanCreateInvoice(t *testing.T) {
	assert.True(t, CanCreateInvoice(userWith(1, model.AuthoritySalesman)))
	assert.True(t, CanCreateInvoice(userWith(1, model.AuthoritySuperAdmin, model.AuthoritySalesman)))

	assert.False(t, CanCreateInvoice(userWith(1, model.AuthoritySuperAdmin)))
	assert.False(t, CanCreateInvoice(userWith(1, model.AuthoritySaleManager)))
	assert.False(t, CanCreateInvoice(userWith(1)))
}

func TestIsAuthorOf(t *testing.T) {
	invoice := &model.Invoice{ID: 10, AuthorID: 1}

	assert.True(t, IsAuthorOf(userWith(1, model.AuthoritySalesman), invoice))

	t.Run("another salesman is not the author", func(t *testing.T) {
		assert.False(t, IsAuthorOf(userWith(2, model.AuthoritySalesman), invoice))
	})

	t.Run("authorship requires the salesman tag", func(t *testing.T) {
		assert.False(t, IsAuthorOf(userWith(1, model.AuthoritySaleManager), invoice))
	})
}

func TestIsAuthorizedFor(t *testing.T) {
	author := inGroups(userWith(1, model.AuthoritySalesman), 100)
	invoice := &model.Invoice{ID: 10, AuthorID: author.ID, Author: author}

	t.Run("finance and admin roles see everything", func(t *testing.T) {
		assert.True(t, IsAuthorizedFor(userWith(5, model.AuthoritySuperAdmin), invoice))
		assert.True(t, IsAuthorizedFor(userWith(5, model.AuthorityAccountant), invoice))
		assert.True(t, IsAuthorizedFor(userWith(5, model.AuthorityMarketDirector), invoice))
	})

	t.Run("salesman sees own invoice only", func(t *testing.T) {
		assert.True(t, IsAuthorizedFor(userWith(1, model.AuthoritySalesman), invoice))
		assert.False(t, IsAuthorizedFor(userWith(2, model.AuthoritySalesman), invoice))
	})

	t.Run("manager sharing a group with the author is authorized", func(t *testing.T) {
		manager := inGroups(userWith(3, model.AuthoritySaleManager), 100)
		assert.True(t, IsAuthorizedFor(manager, invoice))
	})

	t.Run("manager in a different group is not", func(t *testing.T) {
		manager := inGroups(userWith(3, model.AuthoritySaleManager), 200)
		assert.False(t, IsAuthorizedFor(manager, invoice))
	})

	t.Run("manager with no groups is not", func(t *testing.T) {
		assert.False(t, IsAuthorizedFor(userWith(3, model.AuthoritySaleManager), invoice))
	})

	t.Run("manager is authorized for their own invoice regardless of groups", func(t *testing.T) {
		own := &model.Invoice{ID: 11, AuthorID: 3}
		assert.True(t, IsAuthorizedFor(userWith(3, model.AuthoritySaleManager), own))
	})

	t.Run("user without authorities is authorized for nothing", func(t *testing.T) {
		assert.False(t, IsAuthorizedFor(userWith(1), invoice))
	})
}

func TestSharesGroup(t *testing.T) {
	a := inGroups(userWith(1), 100, 200)

	assert.True(t, SharesGroup(a, inGroups(userWith(2), 200)))
	assert.False(t, SharesGroup(a, inGroups(userWith(2), 300)))
	assert.False(t, SharesGroup(a, userWith(2)))
	assert.False(t, SharesGroup(a, nil))
	assert.False(t, SharesGroup(nil, a))
}

func TestScopeFor(t *testing.T) {
	tests := []struct {
		name  string
		actor *model.User
		want  Scope
	}{
		{"super admin", userWith(1, model.AuthoritySuperAdmin), ScopeAll},
		{"accountant", userWith(1, model.AuthorityAccountant), ScopeAll},
		{"market director", userWith(1, model.AuthorityMarketDirector), ScopeAll},
		{"sale manager", userWith(1, model.AuthoritySaleManager), ScopeGroup},
		{"salesman", userWith(1, model.AuthoritySalesman), ScopeSelf},
		{"manager who is also salesman gets the wider scope", userWith(1, model.AuthoritySalesman, model.AuthoritySaleManager), ScopeGroup},
		{"no authorities", userWith(1), ScopeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScopeFor(tt.actor))
		})
	}
}
