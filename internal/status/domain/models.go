package domain

import (
	"context"
	"errors"
)

// StatusType splits the pipeline into lead and client stages.
type StatusType string

const (
	TypeLead   StatusType = "lead"
	TypeClient StatusType = "client"
)

// Status is one pipeline status of the upstream CRM. IsFosseDefault marks
// the single status whose members make up the shared contact pool.
type Status struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Type           StatusType `json:"type"`
	Color          string     `json:"color"`
	IsFosseDefault bool       `json:"is_fosse_default"`
}

// Directory lists and updates statuses upstream.
type Directory interface {
	List(ctx context.Context) ([]Status, error)
	Update(ctx context.Context, status Status) error
}

// Coordinator owns the single global pool-membership flag. At most one
// status carries it; the flag moves via a non-atomic unset-old/set-new pair,
// and the authoritative value is always re-derivable by scanning the
// directory for the flag.
type Coordinator interface {
	// Default returns the currently known default status id, if any.
	Default() (string, bool)
	// SetDefault moves the flag to newStatusID; empty clears it. Equal ids
	// are a no-op. On any upstream failure the local pointer is re-derived
	// from a full scan before the error is returned.
	SetDefault(ctx context.Context, newStatusID string) error
	// Refresh re-derives the default from the directory.
	Refresh(ctx context.Context) error
}

var ErrUnknownStatus = errors.New("unknown_status")
