package models

// Profile is an author record served by the external profiles endpoint.
type Profile struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
