package order

import (
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	contactdomain "github.com/fossecrm/fosse/internal/contact/domain"
	"github.com/fossecrm/fosse/internal/rolesetting/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort returns the contacts arranged per the named order. It is the
// client-side backstop behind the server's own ordering: every non-random
// order is a stable sort, so tied keys keep their input order. The input
// slice is never mutated.
func Sort(contacts []contactdomain.Contact, o domain.Order) []contactdomain.Contact {
	out := append([]contactdomain.Contact(nil), contacts...)

	switch o.Effective() {
	case domain.OrderCreatedAtAsc:
		sortByTime(out, createdAt, false)
	case domain.OrderCreatedAtDesc:
		sortByTime(out, createdAt, true)
	case domain.OrderUpdatedAtAsc:
		sortByTime(out, lastActivity, false)
	case domain.OrderUpdatedAtDesc:
		sortByTime(out, lastActivity, true)
	case domain.OrderAssignedAtAsc:
		sortByTime(out, assignedAt, false)
	case domain.OrderAssignedAtDesc:
		sortByTime(out, assignedAt, true)
	case domain.OrderEmailAsc:
		sortByEmail(out)
	case domain.OrderRandom:
		rand.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	default:
		sortByTime(out, createdAt, true)
	}
	return out
}

// Missing timestamps sort as the epoch.
func createdAt(c contactdomain.Contact) time.Time {
	if c.CreatedAt == nil {
		return time.Time{}
	}
	return *c.CreatedAt
}

// lastActivity prefers the last-activity timestamp and falls back to the
// update timestamp.
func lastActivity(c contactdomain.Contact) time.Time {
	if c.LastActivityAt != nil {
		return *c.LastActivityAt
	}
	if c.UpdatedAt == nil {
		return time.Time{}
	}
	return *c.UpdatedAt
}

func assignedAt(c contactdomain.Contact) time.Time {
	if c.AssignedAt == nil {
		return time.Time{}
	}
	return *c.AssignedAt
}

func sortByTime(contacts []contactdomain.Contact, key func(contactdomain.Contact) time.Time, desc bool) {
	sort.SliceStable(contacts, func(i, j int) bool {
		ti, tj := key(contacts[i]), key(contacts[j])
		if desc {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})
}

// sortByEmail compares trimmed emails case-insensitively with numeric-aware
// tie-breaking; empty emails sort after every non-empty one, keeping their
// relative order.
func sortByEmail(contacts []contactdomain.Contact) {
	coll := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)
	sort.SliceStable(contacts, func(i, j int) bool {
		ei := strings.TrimSpace(contacts[i].Email)
		ej := strings.TrimSpace(contacts[j].Email)
		if ei == "" || ej == "" {
			return ei != "" && ej == ""
		}
		return coll.CompareString(ei, ej) < 0
	})
}
