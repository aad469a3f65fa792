package models

// Post is a listing in the post store. AuthorID and Author are never set by
// the store; clients attach Author after a profile lookup keyed by AuthorID.
type Post struct {
	ID       int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Body     string `gorm:"type:text;not null" json:"body"`
	AuthorID int    `gorm:"-" json:"authorId,omitempty"`
	Author   string `gorm:"-" json:"author,omitempty"`
}
