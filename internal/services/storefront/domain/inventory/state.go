package inventory

// State captures inventory facts derived from domain events.
type State struct {
	Created bool
	ItemID  string
	SKU     string
	Name    string
	Cost    int64
	Stock   int64
}
