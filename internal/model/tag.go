package model

// Tag is an entry label in the global tag registry.
//
// The registry itself does not enforce name uniqueness — the service layer
// performs the duplicate check before adding, matching the original
// division of responsibility between screens and storage helpers.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
