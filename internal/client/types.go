package client

import "encoding/json"

// User is the identity returned by a successful login or signup.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// Room is one room record. Hotel carries the room type label.
type Room struct {
	ID         string `json:"_id"`
	GuestName  string `json:"guestName"`
	Hotel      string `json:"hotel"`
	RoomNumber string `json:"roomNumber"`
	CreatedBy  string `json:"createdBy"`
}

// UnmarshalJSON takes the id from "_id" or, failing that, "id".
func (r *Room) UnmarshalJSON(data []byte) error {
	type plain Room
	aux := struct {
		plain
		AltID string `json:"id"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Room(aux.plain)
	if r.ID == "" {
		r.ID = aux.AltID
	}
	return nil
}

// RoomInput is the body of addRoom and editRoom.
type RoomInput struct {
	GuestName  string `json:"guestName"`
	Hotel      string `json:"hotel"`
	RoomNumber string `json:"roomNumber"`
	CreatedBy  string `json:"createdBy"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Password string `json:"password"`
}

// AuthResult is the body of a 2xx login or signup reply.
type AuthResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user"`
	Token   string `json:"token,omitempty"`
}
