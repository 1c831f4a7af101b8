package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zaqqye/hotel_rooms/internal/auth"
	"github.com/zaqqye/hotel_rooms/internal/controllers"
	"github.com/zaqqye/hotel_rooms/internal/database"
	"github.com/zaqqye/hotel_rooms/internal/middleware"
)

func Register(r *gin.Engine, stores *database.Stores, tokens *auth.Tokens, logger *zap.Logger) {
	authCtrl := &controllers.AuthController{Users: stores.Users, Tokens: tokens, Logger: logger}
	roomCtrl := &controllers.RoomController{Rooms: stores.Rooms, Logger: logger}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public
	r.POST("/login", authCtrl.Login)
	r.POST("/signup", authCtrl.Signup)

	// Rooms; a bearer token narrows access to the token's own records
	rooms := r.Group("/", middleware.OptionalAuth(tokens))
	{
		rooms.GET("/viewRooms", roomCtrl.ViewRooms)
		rooms.POST("/addRoom", roomCtrl.AddRoom)
		rooms.PUT("/editRoom/:id", roomCtrl.EditRoom)
		rooms.DELETE("/deleteRoom/:id", roomCtrl.DeleteRoom)
	}
}

// NewEngine builds the backend handler with logging and panic recovery.
func NewEngine(stores *database.Stores, tokens *auth.Tokens, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))
	Register(r, stores, tokens, logger)
	return r
}
