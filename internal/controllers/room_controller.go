package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zaqqye/hotel_rooms/internal/middleware"
	"github.com/zaqqye/hotel_rooms/internal/models"
	"github.com/zaqqye/hotel_rooms/internal/repository"
)

type RoomController struct {
	Rooms  repository.Rooms
	Logger *zap.Logger
}

type roomRequest struct {
	GuestName  FlexibleString `json:"guestName"`
	Hotel      FlexibleString `json:"hotel"`
	RoomNumber FlexibleString `json:"roomNumber"`
	CreatedBy  string         `json:"createdBy"`
}

func (r roomRequest) fields() (repository.RoomFields, bool) {
	f := repository.RoomFields{
		GuestName:  r.GuestName.String(),
		Hotel:      r.Hotel.String(),
		RoomNumber: r.RoomNumber.String(),
		CreatedBy:  strings.TrimSpace(r.CreatedBy),
	}
	ok := f.GuestName != "" && f.Hotel != "" && f.RoomNumber != "" && f.CreatedBy != ""
	return f, ok
}

func (rc *RoomController) bind(c *gin.Context) (repository.RoomFields, bool) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return repository.RoomFields{}, false
	}
	fields, ok := req.fields()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guestName, hotel, roomNumber and createdBy are required"})
		return fields, false
	}
	if !middleware.AllowOwner(c, fields.CreatedBy) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return fields, false
	}
	return fields, true
}

func (rc *RoomController) ViewRooms(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}
	if !middleware.AllowOwner(c, email) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	rooms, err := rc.Rooms.ListByOwner(c.Request.Context(), email)
	if err != nil {
		rc.Logger.Error("list rooms failed", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch rooms"})
		return
	}
	if rooms == nil {
		rooms = []models.Room{}
	}
	c.JSON(http.StatusOK, rooms)
}

func (rc *RoomController) AddRoom(c *gin.Context) {
	fields, ok := rc.bind(c)
	if !ok {
		return
	}
	room, err := rc.Rooms.Create(c.Request.Context(), fields)
	if err != nil {
		rc.Logger.Error("create room failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add room"})
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (rc *RoomController) EditRoom(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	fields, ok := rc.bind(c)
	if !ok {
		return
	}
	existing, err := rc.Rooms.Get(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	if err != nil {
		rc.Logger.Error("get room failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update room"})
		return
	}
	if !middleware.AllowOwner(c, existing.CreatedBy) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	room, err := rc.Rooms.Update(c.Request.Context(), id, fields)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	if err != nil {
		rc.Logger.Error("update room failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update room"})
		return
	}
	c.JSON(http.StatusOK, room)
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	existing, err := rc.Rooms.Get(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	if err != nil {
		rc.Logger.Error("get room failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete room"})
		return
	}
	if !middleware.AllowOwner(c, existing.CreatedBy) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	if err := rc.Rooms.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		rc.Logger.Error("delete room failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete room"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}
