package column

// Kind describes how a filterable column accepts values.
type Kind string

const (
	KindMulti Kind = "multi"
	KindDate  Kind = "date"
	KindText  Kind = "text"
)

// OptionSource names the directory a multi-valued column draws its options from.
type OptionSource string

const (
	OptionsNone     OptionSource = ""
	OptionsStatuses OptionSource = "statuses"
	OptionsSources  OptionSource = "sources"
	OptionsUsers    OptionSource = "users"
	OptionsTeams    OptionSource = "teams"
)

// Column is one entry of the static filter-column catalog. NameKeyed marks
// columns whose stored filter values are denormalized display names rather
// than foreign ids; their values must be translated before persisting.
type Column struct {
	ID        string
	Kind      Kind
	Options   OptionSource
	NameKeyed bool
}

// catalog is the fixed set of filterable pool-view columns. Its declaration
// order defines the deterministic iteration order of forced filters in
// query construction.
var catalog = []Column{
	{ID: "status", Kind: KindMulti, Options: OptionsStatuses},
	{ID: "source", Kind: KindMulti, Options: OptionsSources},
	{ID: "assigned_user", Kind: KindMulti, Options: OptionsUsers},
	{ID: "team", Kind: KindMulti, Options: OptionsTeams},
	{ID: "previous_user", Kind: KindMulti, Options: OptionsUsers, NameKeyed: true},
	{ID: "previous_status", Kind: KindMulti, Options: OptionsStatuses, NameKeyed: true},
	{ID: "created_at", Kind: KindDate},
	{ID: "updated_at", Kind: KindDate},
	{ID: "assigned_at", Kind: KindDate},
	{ID: "last_activity_at", Kind: KindDate},
	{ID: "email", Kind: KindText},
	{ID: "phone", Kind: KindText},
	{ID: "city", Kind: KindText},
	{ID: "postal_code", Kind: KindText},
}

var byID = func() map[string]Column {
	m := make(map[string]Column, len(catalog))
	for _, c := range catalog {
		m[c.ID] = c
	}
	return m
}()

// Lookup returns the catalog entry for a column id.
func Lookup(id string) (Column, bool) {
	c, ok := byID[id]
	return c, ok
}

// All returns the catalog in declaration order.
func All() []Column {
	out := make([]Column, len(catalog))
	copy(out, catalog)
	return out
}

// Position returns the declaration index of a column id, or -1 when the id
// is not part of the catalog.
func Position(id string) int {
	for i, c := range catalog {
		if c.ID == id {
			return i
		}
	}
	return -1
}
