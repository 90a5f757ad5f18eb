package domain

// Order names a default sort of the pool view.
type Order string

const (
	OrderNone           Order = "none"
	OrderCreatedAtAsc   Order = "created_at_asc"
	OrderCreatedAtDesc  Order = "created_at_desc"
	OrderUpdatedAtAsc   Order = "updated_at_asc"
	OrderUpdatedAtDesc  Order = "updated_at_desc"
	OrderAssignedAtAsc  Order = "assigned_at_asc"
	OrderAssignedAtDesc Order = "assigned_at_desc"
	OrderEmailAsc       Order = "email_asc"
	OrderRandom         Order = "random"
)

// ParseOrder maps a raw string onto the enumeration; anything unrecognized
// collapses to OrderNone, which sorts like created_at_desc.
func ParseOrder(raw string) Order {
	switch Order(raw) {
	case OrderCreatedAtAsc, OrderCreatedAtDesc,
		OrderUpdatedAtAsc, OrderUpdatedAtDesc,
		OrderAssignedAtAsc, OrderAssignedAtDesc,
		OrderEmailAsc, OrderRandom, OrderNone:
		return Order(raw)
	default:
		return OrderNone
	}
}

// Effective resolves the order actually applied: none and empty both fall
// back to created_at_desc.
func (o Order) Effective() Order {
	if o == "" || o == OrderNone {
		return OrderCreatedAtDesc
	}
	return o
}
