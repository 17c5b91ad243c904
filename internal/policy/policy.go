// Package policy holds the pure authorization predicates over an acting
// user and an invoice. The functions are total and side-effect free: a user
// with zero or unknown authorities is simply authorized for nothing, and
// missing entities are the caller's problem to resolve beforehand.
package policy

import (
	"tobacco/internal/model"
)

// CanCreateInvoice reports whether the actor may create invoices.
// Only salesmen author invoices.
func CanCreateInvoice(actor *model.User) bool {
	return actor.HasAuthority(model.AuthoritySalesman)
}

// IsAuthorOf reports whether the actor is the authoring salesman of the
// invoice. Authorship alone is not enough: the salesman authority must
// still be held.
func IsAuthorOf(actor *model.User, invoice *model.Invoice) bool {
	return actor.HasAuthority(model.AuthoritySalesman) && actor.ID == invoice.AuthorID
}

// IsAuthorizedFor reports whether the actor may view or comment on the
// invoice. Super admins, market directors and accountants see everything;
// a salesman sees their own invoices; a sales manager sees invoices
// authored by anyone sharing a group with them, themselves included.
//
// The manager case needs invoice.Author loaded with its groups.
func IsAuthorizedFor(actor *model.User, invoice *model.Invoice) bool {
	if actor.HasAnyAuthority(model.AuthoritySuperAdmin, model.AuthorityMarketDirector, model.AuthorityAccountant) {
		return true
	}
	if actor.HasAuthority(model.AuthoritySalesman) && actor.ID == invoice.AuthorID {
		return true
	}
	if actor.HasAuthority(model.AuthoritySaleManager) {
		if actor.ID == invoice.AuthorID {
			return true
		}
		return SharesGroup(actor, invoice.Author)
	}
	return false
}

// SharesGroup reports whether two users have at least one group in common.
// Membership is checked over the loaded group sets, not by traversing the
// object graph.
func SharesGroup(a, b *model.User) bool {
	if a == nil || b == nil {
		return false
	}
	ids := make(map[int64]struct{}, len(a.Groups))
	for _, g := range a.Groups {
		ids[g.ID] = struct{}{}
	}
	for _, g := range b.Groups {
		if _, ok := ids[g.ID]; ok {
			return true
		}
	}
	return false
}

// Scope is the listing visibility derived from the actor's authorities,
// widest first.
type Scope int

const (
	// ScopeNone matches no invoice at all.
	ScopeNone Scope = iota
	// ScopeSelf matches invoices authored by the actor.
	ScopeSelf
	// ScopeGroup matches invoices authored by the actor or by anyone
	// sharing a group with the actor.
	ScopeGroup
	// ScopeAll imposes no restriction.
	ScopeAll
)

// ScopeFor derives the widest listing scope the actor's authorities grant.
func ScopeFor(actor *model.User) Scope {
	if actor.HasAnyAuthority(model.AuthoritySuperAdmin, model.AuthorityMarketDirector, model.AuthorityAccountant) {
		return ScopeAll
	}
	if actor.HasAuthority(model.AuthoritySaleManager) {
		return ScopeGroup
	}
	if actor.HasAuthority(model.AuthoritySalesman) {
		return ScopeSelf
	}
	return ScopeNone
}
