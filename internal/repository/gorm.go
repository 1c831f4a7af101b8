package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/zaqqye/hotel_rooms/internal/models"
)

type GormUsers struct {
	DB *gorm.DB
}

func (r *GormUsers) Create(ctx context.Context, user *models.User) error {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *GormUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

type GormRooms struct {
	DB *gorm.DB
}

func (r *GormRooms) ListByOwner(ctx context.Context, email string) ([]models.Room, error) {
	rooms := []models.Room{}
	if err := r.DB.WithContext(ctx).Where("created_by = ?", email).Order("created_at ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (r *GormRooms) Get(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &room, nil
}

func (r *GormRooms) Create(ctx context.Context, fields RoomFields) (*models.Room, error) {
	room := models.Room{
		GuestName:  fields.GuestName,
		Hotel:      fields.Hotel,
		RoomNumber: fields.RoomNumber,
		CreatedBy:  fields.CreatedBy,
	}
	if err := r.DB.WithContext(ctx).Create(&room).Error; err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	return &room, nil
}

func (r *GormRooms) Update(ctx context.Context, id string, fields RoomFields) (*models.Room, error) {
	room, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	room.GuestName = fields.GuestName
	room.Hotel = fields.Hotel
	room.RoomNumber = fields.RoomNumber
	room.CreatedBy = fields.CreatedBy
	if err := r.DB.WithContext(ctx).Save(room).Error; err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}
	return room, nil
}

func (r *GormRooms) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Room{})
	if res.Error != nil {
		return fmt.Errorf("delete room: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
