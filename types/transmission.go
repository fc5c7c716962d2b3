package types

import "time"

// Transmission is a dated announcement published by an administrator.
type Transmission struct {
	// ID is the unique identifier of the transmission (UUID v4).
	ID string `json:"id" bson:"_id" db:"id"`

	// Title is the headline of the transmission.
	Title string `json:"title" bson:"title" db:"title"`

	// Description is the body text of the transmission.
	Description string `json:"description" bson:"description" db:"description"`

	// VideoURL optionally links to an accompanying video.
	VideoURL *string `json:"video_url" bson:"video_url,omitempty" db:"video_url"`

	// DayNumber is the mission day the transmission belongs to.
	// Day numbers are not required to be unique or sequential.
	DayNumber int `json:"day_number" bson:"day_number" db:"day_number"`

	// CreatedAt is the timestamp when the transmission was published.
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}
