package types

import "time"

// AdminAuthor is the author id recorded on comments posted by an administrator.
const AdminAuthor = "ADMIN"

// Comment is a note left under a transmission, optionally replying to another comment.
type Comment struct {
	ID             string    `json:"id" bson:"_id" db:"id"`
	TransmissionID string    `json:"transmission_id" bson:"transmission_id" db:"transmission_id"`
	ScrollID       string    `json:"scroll_id" bson:"scroll_id" db:"scroll_id"`
	Content        string    `json:"content" bson:"content" db:"content"`
	ParentID       *string   `json:"parent_id" bson:"parent_id,omitempty" db:"parent_id"`
	IsAdmin        bool      `json:"is_admin" bson:"is_admin" db:"is_admin"`
	IsDeleted      bool      `json:"is_deleted" bson:"is_deleted" db:"is_deleted"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}
