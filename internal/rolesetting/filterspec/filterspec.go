package filterspec

import (
	"context"

	"github.com/fossecrm/fosse/internal/column"
	"github.com/fossecrm/fosse/internal/rolesetting/domain"
)

// Lookup resolves a foreign id to its display name within an option source.
// The label resolver satisfies it.
type Lookup interface {
	NameByID(ctx context.Context, source column.OptionSource, id string) (string, bool)
}

// SetOpen marks a column's filter as viewer-adjustable. Previously supplied
// values survive for multi-select columns (an open-but-pre-seeded default the
// viewer may narrow further); every other kind starts from a blank spec.
func SetOpen(set domain.FilterSet, columnID string) domain.FilterSet {
	out := set.Clone()
	if out == nil {
		out = domain.FilterSet{}
	}
	spec := domain.FilterSpec{Type: domain.FilterOpen}
	if col, ok := column.Lookup(columnID); ok && col.Kind == column.KindMulti {
		spec.Values = out[columnID].Values
	}
	out[columnID] = spec
	return out
}

// SetDefined pins a column's filter to a fixed value set.
func SetDefined(set domain.FilterSet, columnID string, values []string) domain.FilterSet {
	out := set.Clone()
	if out == nil {
		out = domain.FilterSet{}
	}
	out[columnID] = domain.FilterSpec{
		Type:   domain.FilterDefined,
		Values: append([]string(nil), values...),
	}
	return out
}

// Clear removes a column's forced filter entirely.
func Clear(set domain.FilterSet, columnID string) domain.FilterSet {
	out := set.Clone()
	delete(out, columnID)
	return out
}

// Normalize rewrites id-valued inputs to name-valued outputs for a
// name-keyed column. Values already in name form (or unknown to the
// directory) pass through unchanged, which makes the operation idempotent.
func Normalize(ctx context.Context, columnID string, values []string, lookup Lookup) []string {
	col, ok := column.Lookup(columnID)
	if !ok || !col.NameKeyed || lookup == nil {
		return values
	}
	out := make([]string, len(values))
	for i, v := range values {
		if name, found := lookup.NameByID(ctx, col.Options, v); found {
			out[i] = name
			continue
		}
		out[i] = v
	}
	return out
}

// NormalizeSet applies Normalize to every name-keyed column of a set before
// it is written back to storage.
func NormalizeSet(ctx context.Context, set domain.FilterSet, lookup Lookup) domain.FilterSet {
	out := set.Clone()
	for columnID, spec := range out {
		if len(spec.Values) == 0 {
			continue
		}
		spec.Values = Normalize(ctx, columnID, spec.Values, lookup)
		out[columnID] = spec
	}
	return out
}
