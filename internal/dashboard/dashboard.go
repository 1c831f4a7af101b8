// Package dashboard holds the room list and the create / edit form of a
// logged-in user.
package dashboard

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/zaqqye/hotel_rooms/internal/client"
)

// API is the part of the backend client the dashboard calls.
type API interface {
	ListRooms(ctx context.Context, email string) ([]client.Room, error)
	AddRoom(ctx context.Context, in client.RoomInput) (*client.Room, error)
	EditRoom(ctx context.Context, id string, in client.RoomInput) (*client.Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

// Notifier shows transient success and error messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer asks the user a yes / no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

const (
	msgFetchFailed    = "Failed to fetch rooms"
	msgNotAuthed      = "User not authenticated. Please log in again."
	msgFieldsRequired = "All fields are required and cannot be empty!"
	msgAdded          = "Room Added Successfully"
	msgUpdated        = "Room Updated Successfully"
	msgSaveFailed     = "Failed to add room"
	msgConfirmDelete  = "Are you sure you want to delete this room?"
	msgDeleted        = "Room Deleted Successfully"
	msgDeleteFailed   = "Failed to delete room"
	labelAdd          = "Add Room"
	labelUpdate       = "Update Room"
	labelSubmitting   = "Submitting..."
	headingPrefix     = "Hotel Room Management for "
)

// Draft is the content of the room form.
type Draft struct {
	GuestName  string
	Hotel      string
	RoomNumber string
}

func (d Draft) complete() bool {
	return strings.TrimSpace(d.GuestName) != "" &&
		strings.TrimSpace(d.Hotel) != "" &&
		strings.TrimSpace(d.RoomNumber) != ""
}

// Mode is Creating when EditID is empty, otherwise Editing the room EditID.
type Mode struct {
	EditID string
}

var Creating = Mode{}

func Editing(id string) Mode { return Mode{EditID: id} }

func (m Mode) Editing() bool { return m.EditID != "" }

type Result int

const (
	// Busy means another submit was still in flight.
	Busy Result = iota
	Unauthenticated
	Invalid
	Failed
	Cancelled
	Done
)

type Params struct {
	API       API
	User      *client.User
	Notifier  Notifier
	Confirmer Confirmer
	// OnLogout clears the logged-in flag and returns to the session view.
	OnLogout  func()
	Logger    *zap.Logger
}

type Dashboard struct {
	api      API
	user     *client.User
	notify   Notifier
	confirm  Confirmer
	onLogout func()
	logger   *zap.Logger

	life   context.Context
	cancel context.CancelFunc

	submitting atomic.Bool
	issued     atomic.Uint64

	mu      sync.Mutex
	rooms   []client.Room
	applied uint64
	draft   Draft
	mode    Mode
}

func New(p Params) *Dashboard {
	if p.API == nil {
		panic("dashboard: nil API")
	}
	if p.Notifier == nil {
		p.Notifier = discard{}
	}
	if p.Confirmer == nil {
		p.Confirmer = discard{}
	}
	if p.OnLogout == nil {
		p.OnLogout = func() {}
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	life, cancel := context.WithCancel(context.Background())
	return &Dashboard{
		api:      p.API,
		user:     p.User,
		notify:   p.Notifier,
		confirm:  p.Confirmer,
		onLogout: p.OnLogout,
		logger:   p.Logger,
		life:     life,
		cancel:   cancel,
		rooms:    []client.Room{},
	}
}

// discard declines every confirmation and drops every message.
type discard struct{}

func (discard) Success(string)      {}
func (discard) Error(string)        {}
func (discard) Confirm(string) bool { return false }

// Open loads the room list when the user has an email.
func (d *Dashboard) Open(ctx context.Context) {
	if d.email() != "" {
		d.Refresh(ctx)
	}
}

// Close cancels calls still in flight. Their results are dropped.
func (d *Dashboard) Close() {
	d.cancel()
}

func (d *Dashboard) closed() bool {
	return d.life.Err() != nil
}

// scope derives a context that also ends when the dashboard is closed.
func (d *Dashboard) scope(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(d.life, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (d *Dashboard) email() string {
	if d.user == nil {
		return ""
	}
	return d.user.Email
}

// Refresh replaces the list with the user's rooms. It reports whether the
// reply was applied. A reply older than one already applied is dropped.
func (d *Dashboard) Refresh(ctx context.Context) bool {
	email := d.email()
	if email == "" || d.closed() {
		return false
	}
	seq := d.issued.Add(1)

	ctx, done := d.scope(ctx)
	defer done()
	rooms, err := d.api.ListRooms(ctx, email)
	if d.closed() {
		return false
	}
	if err != nil {
		d.logger.Warn("fetch rooms failed", zap.String("email", email), zap.Error(err))
		d.notify.Error(msgFetchFailed)
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if seq <= d.applied {
		d.logger.Debug("stale room list dropped", zap.Uint64("seq", seq), zap.Uint64("applied", d.applied))
		return false
	}
	d.applied = seq
	d.rooms = rooms
	return true
}

func (d *Dashboard) SetDraft(draft Draft) {
	d.mu.Lock()
	d.draft = draft
	d.mu.Unlock()
}

// Edit loads room into the form and switches to editing it.
func (d *Dashboard) Edit(room client.Room) {
	d.mu.Lock()
	d.draft = Draft{GuestName: room.GuestName, Hotel: room.Hotel, RoomNumber: room.RoomNumber}
	d.mode = Editing(room.ID)
	d.mu.Unlock()
}

// NewRoom clears the form and goes back to creating.
func (d *Dashboard) NewRoom() {
	d.mu.Lock()
	d.draft = Draft{}
	d.mode = Creating
	d.mu.Unlock()
}

// Submit creates or updates a room from the draft. Only one submit runs at
// a time; a second call while one is in flight returns Busy and sends
// nothing.
func (d *Dashboard) Submit(ctx context.Context) Result {
	if !d.submitting.CompareAndSwap(false, true) {
		return Busy
	}
	defer d.submitting.Store(false)

	email := d.email()
	if email == "" {
		d.notify.Error(msgNotAuthed)
		d.Logout()
		return Unauthenticated
	}

	d.mu.Lock()
	draft, mode := d.draft, d.mode
	d.mu.Unlock()

	if !draft.complete() {
		d.notify.Error(msgFieldsRequired)
		return Invalid
	}

	in := client.RoomInput{
		GuestName:  draft.GuestName,
		Hotel:      draft.Hotel,
		RoomNumber: draft.RoomNumber,
		CreatedBy:  email,
	}
	scoped, done := d.scope(ctx)
	var err error
	if mode.Editing() {
		_, err = d.api.EditRoom(scoped, mode.EditID, in)
	} else {
		_, err = d.api.AddRoom(scoped, in)
	}
	done()
	if d.closed() {
		return Cancelled
	}
	if err != nil {
		d.logger.Warn("save room failed", zap.Bool("editing", mode.Editing()), zap.Error(err))
		d.notify.Error(saveFailure(err))
		return Failed
	}

	if mode.Editing() {
		d.notify.Success(msgUpdated)
	} else {
		d.notify.Success(msgAdded)
	}
	d.NewRoom()
	d.Refresh(ctx)
	return Done
}

func saveFailure(err error) string {
	if msg, ok := client.ServerMessage(err); ok {
		return msg
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgSaveFailed
}

// Delete removes the room id after the user confirms.
func (d *Dashboard) Delete(ctx context.Context, id string) Result {
	if !d.confirm.Confirm(msgConfirmDelete) {
		return Cancelled
	}
	scoped, done := d.scope(ctx)
	err := d.api.DeleteRoom(scoped, id)
	done()
	if d.closed() {
		return Cancelled
	}
	if err != nil {
		d.logger.Warn("delete room failed", zap.String("id", id), zap.Error(err))
		d.notify.Error(msgDeleteFailed)
		return Failed
	}
	d.notify.Success(msgDeleted)
	d.Refresh(ctx)
	return Done
}

// Logout leaves the dashboard.
func (d *Dashboard) Logout() {
	d.Close()
	d.onLogout()
}

func (d *Dashboard) User() *client.User { return d.user }

func (d *Dashboard) Heading() string {
	if d.user == nil {
		return headingPrefix
	}
	return headingPrefix + d.user.Name
}

// Rooms returns a copy of the current list.
func (d *Dashboard) Rooms() []client.Room {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]client.Room(nil), d.rooms...)
}

// RoomAt returns the room shown with serial number n (1-based).
func (d *Dashboard) RoomAt(n int) (client.Room, bool) {
	if n < 1 {
		return client.Room{}, false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	room, err := lo.Nth(d.rooms, n-1)
	return room, err == nil
}

func (d *Dashboard) Draft() Draft {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draft
}

func (d *Dashboard) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

func (d *Dashboard) Submitting() bool { return d.submitting.Load() }

func (d *Dashboard) SubmitLabel() string {
	if d.Submitting() {
		return labelSubmitting
	}
	return lo.Ternary(d.Mode().Editing(), labelUpdate, labelAdd)
}
