package query

import (
	"net/url"
	"sort"
	"strconv"

	"github.com/fossecrm/fosse/internal/column"
	"github.com/fossecrm/fosse/internal/rolesetting/domain"
)

// Build derives the flat parameter set for a contact query from a settings
// record. Pure: identical inputs always produce an identical parameter set.
// Filter entries follow the catalog's declared column order (unknown columns
// trail, lexicographically) so the output is deterministic despite the
// filter map.
func Build(setting domain.RoleSetting, orderOverride domain.Order, page, pageSize int) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))

	order := orderOverride
	if order == "" || order == domain.OrderNone {
		order = setting.DefaultOrder
	}
	params.Set("order", string(order.Effective()))

	for _, columnID := range filterOrder(setting.ForcedFilters) {
		spec := setting.ForcedFilters[columnID]
		if spec.Empty() {
			continue
		}
		switch {
		case len(spec.Values) > 0:
			for _, v := range spec.Values {
				params.Add("filter_"+columnID, v)
			}
		case !spec.DateRange.Empty():
			if spec.DateRange.From != "" {
				params.Set("filter_"+columnID+"_from", spec.DateRange.From)
			}
			if spec.DateRange.To != "" {
				params.Set("filter_"+columnID+"_to", spec.DateRange.To)
			}
		default:
			params.Set("filter_"+columnID, spec.Value)
		}
	}
	return params
}

func filterOrder(set domain.FilterSet) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		pi, pj := column.Position(ids[i]), column.Position(ids[j])
		if pi == -1 && pj == -1 {
			return ids[i] < ids[j]
		}
		if pi == -1 || pj == -1 {
			return pj == -1
		}
		return pi < pj
	})
	return ids
}
