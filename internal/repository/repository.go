package repository

import (
	"context"
	"errors"

	"github.com/zaqqye/hotel_rooms/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type Users interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// RoomFields are the caller-editable columns of a room.
type RoomFields struct {
	GuestName  string
	Hotel      string
	RoomNumber string
	CreatedBy  string
}

type Rooms interface {
	// ListByOwner returns rooms created by email, oldest first.
	ListByOwner(ctx context.Context, email string) ([]models.Room, error)
	Get(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, fields RoomFields) (*models.Room, error)
	Update(ctx context.Context, id string, fields RoomFields) (*models.Room, error)
	Delete(ctx context.Context, id string) error
}
