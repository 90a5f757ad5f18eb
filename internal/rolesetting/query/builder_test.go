package query

import (
	"testing"

	"github.com/fossecrm/fosse/internal/rolesetting/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuild_OrderFallsBackToDefaultOrder(t *testing.T) {
	setting := domain.DefaultRoleSetting("r1")
	setting.DefaultOrder = domain.OrderEmailAsc

	params := Build(setting, domain.OrderNone, 1, 100)

	assert.Equal(t, "email_asc", params.Get("order"))
	assert.Equal(t, "1", params.Get("page"))
	assert.Equal(t, "100", params.Get("page_size"))
}

func TestBuild_NoneDefaultOrderYieldsCreatedAtDesc(t *testing.T) {
	setting := domain.DefaultRoleSetting("r1")
	setting.DefaultOrder = domain.OrderNone

	params := Build(setting, domain.OrderNone, 1, 100)

	assert.Equal(t, "created_at_desc", params.Get("order"))
}

func TestBuild_OverrideWins(t *testing.T) {
	setting := domain.DefaultRoleSetting("r1")
	setting.DefaultOrder = domain.OrderEmailAsc

	params := Build(setting, domain.OrderRandom, 1, 100)

	assert.Equal(t, "random", params.Get("order"))
}

func TestBuild_MultiValuedFilterEmitsOneEntryPerValue(t *testing.T) {
	setting := domain.DefaultRoleSetting("r1")
	setting.ForcedFilters = domain.FilterSet{
		"status": {Type: domain.FilterDefined, Values: []string{"New", "Hot", "Cold"}},
	}

	params := Build(setting, domain.OrderNone, 1, 100)

	assert.Equal(t, []string{"New", "Hot", "Cold"}, params["filter_status"])
}

func TestBuild_EmptyDefinedSetIsNoOp(t *testing.T) {
	setting := domain.DefaultRoleSetting("r1")
	setting.ForcedFilters = domain.FilterSet{
		"status": {Type: domain.FilterDefined, Values: []string{}},
	}

	params := Build(setting, domain.OrderNone, 1, 100)

	_, present := params["filter_status"]
	assert.False(t, present)
}

func TestBuild_DateRangeParams(t *testing.T) {
	setting := domain.DefaultRoleSetting("r1")
	setting.ForcedFilters = domain.FilterSet{
		"created_at": {Type: domain.FilterOpen, DateRange: domain.DateRange{From: "2024-01-01", To: "2024-06-30"}},
		"updated_at": {Type: domain.FilterOpen, DateRange: domain.DateRange{From: "2024-03-01"}},
	}

	params := Build(setting, domain.OrderNone, 1, 100)

	assert.Equal(t, "2024-01-01", params.Get("filter_created_at_from"))
	assert.Equal(t, "2024-06-30", params.Get("filter_created_at_to"))
	assert.Equal(t, "2024-03-01", params.Get("filter_updated_at_from"))
	_, present := params["filter_updated_at_to"]
	assert.False(t, present)
}

func TestBuild_FreeTextValue(t *testing.T) {
	setting := domain.DefaultRoleSetting("r1")
	setting.ForcedFilters = domain.FilterSet{
		"city": {Type: domain.FilterOpen, Value: "Lyon"},
	}

	params := Build(setting, domain.OrderNone, 1, 100)

	assert.Equal(t, "Lyon", params.Get("filter_city"))
}

func TestBuild_Deterministic(t *testing.T) {
	setting := domain.DefaultRoleSetting("r1")
	setting.ForcedFilters = domain.FilterSet{
		"team":   {Type: domain.FilterDefined, Values: []string{"t2", "t1"}},
		"status": {Type: domain.FilterDefined, Values: []string{"New"}},
		"city":   {Type: domain.FilterOpen, Value: "Paris"},
	}

	first := Build(setting, domain.OrderNone, 1, 100).Encode()
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Build(setting, domain.OrderNone, 1, 100).Encode())
	}
}
