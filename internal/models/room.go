package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room is a guest's room assignment. Hotel holds the room type label.
type Room struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"_id"`
	GuestName  string    `json:"guestName"`
	Hotel      string    `json:"hotel"`
	RoomNumber string    `json:"roomNumber"`
	CreatedBy  string    `gorm:"index" json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
