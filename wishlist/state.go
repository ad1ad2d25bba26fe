package wishlist

import "wishlist-lite/models"

// State is the lifecycle position of an item. Storage keeps two boolean
// flags for compatibility; this enum is how the controller reasons about
// them.
type State int

const (
	// StateActiveUnpurchased: on the wishlist, not yet bought.
	StateActiveUnpurchased State = iota
	// StateActivePurchased: bought but still on the active list, eligible
	// for bulk archiving.
	StateActivePurchased
	// StateArchived: moved off the active list; restorable.
	StateArchived
)

func StateOf(item models.Item) State {
	switch {
	case item.Archived:
		return StateArchived
	case item.Purchased:
		return StateActivePurchased
	default:
		return StateActiveUnpurchased
	}
}

func (s State) String() string {
	switch s {
	case StateActiveUnpurchased:
		return "active"
	case StateActivePurchased:
		return "purchased"
	case StateArchived:
		return "archived"
	}
	return "unknown"
}
