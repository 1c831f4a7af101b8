package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/zaqqye/hotel_rooms/internal/models"
)

// MemoryStore backs the development backend when no database is configured.
// It satisfies both Users and Rooms.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]models.User // lower-cased email -> user
	rooms map[string]models.Room // id -> room
	order []string               // room ids in insertion order
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: map[string]models.User{},
		rooms: map[string]models.Room{},
		now:   time.Now,
	}
}

func (s *MemoryStore) Users() Users { return memoryUsers{s} }
func (s *MemoryStore) Rooms() Rooms { return memoryRooms{s} }

type memoryUsers struct{ s *MemoryStore }

func (m memoryUsers) Create(_ context.Context, user *models.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := m.s.users[key]; exists {
		return ErrDuplicate
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := m.s.now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	m.s.users[key] = *user
	return nil
}

func (m memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	user, ok := m.s.users[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

type memoryRooms struct{ s *MemoryStore }

func (m memoryRooms) ListByOwner(_ context.Context, email string) ([]models.Room, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	rooms := lo.FilterMap(m.s.order, func(id string, _ int) (models.Room, bool) {
		r := m.s.rooms[id]
		return r, r.CreatedBy == email
	})
	return rooms, nil
}

func (m memoryRooms) Get(_ context.Context, id string) (*models.Room, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	room, ok := m.s.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &room, nil
}

func (m memoryRooms) Create(_ context.Context, fields RoomFields) (*models.Room, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	now := m.s.now().UTC()
	room := models.Room{
		ID:         uuid.NewString(),
		GuestName:  fields.GuestName,
		Hotel:      fields.Hotel,
		RoomNumber: fields.RoomNumber,
		CreatedBy:  fields.CreatedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.s.rooms[room.ID] = room
	m.s.order = append(m.s.order, room.ID)
	return &room, nil
}

func (m memoryRooms) Update(_ context.Context, id string, fields RoomFields) (*models.Room, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	room, ok := m.s.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	room.GuestName = fields.GuestName
	room.Hotel = fields.Hotel
	room.RoomNumber = fields.RoomNumber
	room.CreatedBy = fields.CreatedBy
	room.UpdatedAt = m.s.now().UTC()
	m.s.rooms[id] = room
	return &room, nil
}

func (m memoryRooms) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.rooms[id]; !ok {
		return ErrNotFound
	}
	delete(m.s.rooms, id)
	m.s.order = lo.Without(m.s.order, id)
	return nil
}
