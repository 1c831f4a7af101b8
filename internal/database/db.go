package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/zaqqye/hotel_rooms/internal/config"
	"github.com/zaqqye/hotel_rooms/internal/models"
	"github.com/zaqqye/hotel_rooms/internal/repository"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Room{})
}

// Stores is the persistence the development backend runs on.
type Stores struct {
	Users repository.Users
	Rooms repository.Rooms
}

// Open picks the store named by cfg.StoreDriver. The postgres driver
// connects and migrates before returning.
func Open(cfg *config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case "memory", "":
		mem := repository.NewMemoryStore()
		return &Stores{Users: mem.Users(), Rooms: mem.Rooms()}, nil
	case "postgres":
		db, err := Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("database migration failed: %w", err)
		}
		return &Stores{Users: &repository.GormUsers{DB: db}, Rooms: &repository.GormRooms{DB: db}}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
