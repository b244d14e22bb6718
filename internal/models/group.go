package models

// Group is a named category posts can belong to. The API exposes it
// read-only; groups are managed directly in the database.
type Group struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:150"`
	Description string `json:"description"`
}
