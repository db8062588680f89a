package domain

// SelectionKey is the storage key under which the chosen guide identifier is persisted.
const SelectionKey = "selectedGuide"

// VisitorSelectionKey scopes the selection key to one visitor.
// Hosts that serve many visitors from one store use it instead of SelectionKey.
func VisitorSelectionKey(visitorID string) string {
	if visitorID == "" {
		return SelectionKey
	}
	return "visitor:" + visitorID + ":" + SelectionKey
}
