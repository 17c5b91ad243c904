package repository

import (
	"time"

	"tobacco/internal/model"
	"tobacco/internal/policy"

	"gorm.io/gorm"
)

// Clause is one optional conjunctive restriction on a list query. A nil
// Clause imposes no constraint, so omitted filter fields cost nothing.
type Clause func(*gorm.DB) *gorm.DB

// ApplyClauses chains every non-nil clause onto the query.
func ApplyClauses(db *gorm.DB, clauses ...Clause) *gorm.DB {
	for _, clause := range clauses {
		if clause != nil {
			db = clause(db)
		}
	}
	return db
}

// TextContains matches rows whose column contains the value as a substring
// (single wildcard-wrapped LIKE).
func TextContains(column string, value *string) Clause {
	if value == nil {
		return nil
	}
	pattern := "%" + *value + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" LIKE ?", pattern)
	}
}

// EqualsString matches rows whose column equals the value exactly.
func EqualsString(column string, value *string) Clause {
	if value == nil {
		return nil
	}
	v := *value
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", v)
	}
}

// MinValue matches rows whose numeric column is at least the value.
func MinValue(column string, value *int64) Clause {
	if value == nil {
		return nil
	}
	v := *value
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" >= ?", v)
	}
}

// MaxValue matches rows whose numeric column is at most the value.
func MaxValue(column string, value *int64) Clause {
	if value == nil {
		return nil
	}
	v := *value
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" <= ?", v)
	}
}

// Before matches rows whose timestamp column is at or before the instant
// (inclusive bound).
func Before(column string, value *time.Time) Clause {
	if value == nil {
		return nil
	}
	v := *value
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" <= ?", v)
	}
}

// After matches rows whose timestamp column is at or after the instant
// (inclusive bound).
func After(column string, value *time.Time) Clause {
	if value == nil {
		return nil
	}
	v := *value
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" >= ?", v)
	}
}

// DeletedFlag filters on the soft-delete flag. Listings exclude deleted
// rows by default; passing the filter explicitly overrides that.
func DeletedFlag(value *bool) Clause {
	deleted := false
	if value != nil {
		deleted = *value
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted = ?", deleted)
	}
}

// MemberOfGroup matches users belonging to the group.
func MemberOfGroup(groupID *int64) Clause {
	if groupID == nil {
		return nil
	}
	id := *groupID
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN (SELECT user_id FROM users_groups WHERE group_id = ?)", id)
	}
}

// HasMember matches groups the user belongs to.
func HasMember(userID *int64) Clause {
	if userID == nil {
		return nil
	}
	id := *userID
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN (SELECT group_id FROM users_groups WHERE user_id = ?)", id)
	}
}

// HoldsAuthority matches users holding the authority tag.
func HoldsAuthority(authority *model.Authority) Clause {
	if authority == nil {
		return nil
	}
	a := *authority
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN (SELECT user_id FROM users_authorities WHERE authority = ?)", a)
	}
}

// Nothing matches no row at all. Used for actors whose authorities grant no
// listing scope.
func Nothing() Clause {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("1 = 0")
	}
}

// InvoiceScope translates the actor's authorization scope into a listing
// clause prepended before the other invoice filters.
func InvoiceScope(actor *model.User) Clause {
	switch policy.ScopeFor(actor) {
	case policy.ScopeAll:
		return nil
	case policy.ScopeGroup:
		actorID := actor.ID
		return func(db *gorm.DB) *gorm.DB {
			return db.Where(
				"author_id = ? OR author_id IN (SELECT user_id FROM users_groups WHERE group_id IN (SELECT group_id FROM users_groups WHERE user_id = ?))",
				actorID, actorID,
			)
		}
	case policy.ScopeSelf:
		actorID := actor.ID
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("author_id = ?", actorID)
		}
	default:
		return Nothing()
	}
}
