package domain

import (
	"time"

	"gorm.io/datatypes"
)

// FilterType says whether a forced filter is still adjustable by the viewer.
type FilterType string

const (
	// FilterOpen lets the viewer narrow the filter further; the stored
	// values (if any) only seed the default constraint.
	FilterOpen FilterType = "open"
	// FilterDefined fixes the value set; the viewer cannot edit it.
	FilterDefined FilterType = "defined"
)

// DateRange bounds a date-typed filter. Both sides are optional ISO dates.
type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

func (r DateRange) Empty() bool {
	return r.From == "" && r.To == ""
}

// FilterSpec is the forced-filter state of a single column. Exactly one of
// Values, Value or DateRange carries meaning, determined by the column's
// declared kind.
type FilterSpec struct {
	Type      FilterType `json:"type"`
	Values    []string   `json:"values,omitempty"`
	Value     string     `json:"value,omitempty"`
	DateRange DateRange  `json:"date_range,omitempty"`
}

// Empty reports whether the spec contributes nothing to a query.
func (f FilterSpec) Empty() bool {
	return len(f.Values) == 0 && f.Value == "" && f.DateRange.Empty()
}

// FilterSet maps column ids to their forced-filter state.
type FilterSet map[string]FilterSpec

// Clone returns a deep copy so optimistic snapshots never alias live state.
func (s FilterSet) Clone() FilterSet {
	if s == nil {
		return nil
	}
	out := make(FilterSet, len(s))
	for col, spec := range s {
		if spec.Values != nil {
			spec.Values = append([]string(nil), spec.Values...)
		}
		out[col] = spec
	}
	return out
}

// RoleSetting is the pool-view configuration of a single role. An empty ID
// marks a record synthesized in memory that has not been persisted yet.
type RoleSetting struct {
	ID              string                      `gorm:"primaryKey" json:"id"`
	RoleID          string                      `gorm:"not null;uniqueIndex" json:"role_id"`
	ForcedColumns   datatypes.JSONSlice[string] `gorm:"not null" json:"forced_columns"`
	ForcedFilters   FilterSet                   `gorm:"serializer:json;not null" json:"forced_filters"`
	DefaultOrder    Order                       `gorm:"not null;default:created_at_desc" json:"default_order"`
	DefaultStatusID *string                     `json:"default_status_id"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

// DefaultRoleSetting synthesizes the in-memory record used before a role has
// anything durable: empty id, no forced columns or filters, newest-first order.
func DefaultRoleSetting(roleID string) RoleSetting {
	return RoleSetting{
		RoleID:        roleID,
		ForcedColumns: datatypes.JSONSlice[string]{},
		ForcedFilters: FilterSet{},
		DefaultOrder:  OrderCreatedAtDesc,
	}
}

// Clone deep-copies the record, including filter value slices.
func (r RoleSetting) Clone() RoleSetting {
	out := r
	out.ForcedColumns = append(datatypes.JSONSlice[string]{}, r.ForcedColumns...)
	out.ForcedFilters = r.ForcedFilters.Clone()
	if r.DefaultStatusID != nil {
		id := *r.DefaultStatusID
		out.DefaultStatusID = &id
	}
	return out
}
