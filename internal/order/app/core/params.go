package core

const (
	// Unknown masks any display value a peer could not supply.
	Unknown = "Unknown"

	OrdersCollection = "orders"
)

type OrderParams struct {
	// StrictStatus restricts status updates to the known lifecycle, moving forward only.
	StrictStatus bool
}
