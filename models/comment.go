package models

// Comment is a reply shown on a post's detail view. Comments live only in the
// viewer's memory; the post store never holds them.
type Comment struct {
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
}
