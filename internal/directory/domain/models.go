package domain

import "context"

// Entry is the {id, name} tuple every directory hands out.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Lister is the one operation all directories share.
type Lister interface {
	List(ctx context.Context) ([]Entry, error)
}

// Distinct directory types so dependency wiring can tell them apart.
type (
	Roles   interface{ Lister }
	Sources interface{ Lister }
	Users   interface{ Lister }
	Teams   interface{ Lister }
)
