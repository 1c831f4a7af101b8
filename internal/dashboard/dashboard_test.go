package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zaqqye/hotel_rooms/internal/auth"
	"github.com/zaqqye/hotel_rooms/internal/client"
	"github.com/zaqqye/hotel_rooms/internal/database"
	"github.com/zaqqye/hotel_rooms/internal/repository"
	"github.com/zaqqye/hotel_rooms/internal/routes"
)

var alice = &client.User{Name: "Alice", Email: "a@x.com"}

type toasts struct {
	mu      sync.Mutex
	success []string
	errors  []string
	answer  bool
	asked   []string
}

func (t *toasts) Success(msg string) {
	t.mu.Lock()
	t.success = append(t.success, msg)
	t.mu.Unlock()
}

func (t *toasts) Error(msg string) {
	t.mu.Lock()
	t.errors = append(t.errors, msg)
	t.mu.Unlock()
}

func (t *toasts) Confirm(prompt string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.asked = append(t.asked, prompt)
	return t.answer
}

type fakeAPI struct {
	mu      sync.Mutex
	lists   int
	adds    []client.RoomInput
	edits   map[string]client.RoomInput
	deletes []string
	rooms   []client.Room
	listErr error
	saveErr error

	// listFn, when set, replaces the canned list reply.
	listFn func(ctx context.Context, call int) ([]client.Room, error)
	// addFn, when set, runs before AddRoom returns.
	addFn  func(ctx context.Context)
}

func (f *fakeAPI) ListRooms(ctx context.Context, _ string) ([]client.Room, error) {
	f.mu.Lock()
	f.lists++
	call, fn := f.lists, f.listFn
	rooms, err := append([]client.Room(nil), f.rooms...), f.listErr
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, call)
	}
	return rooms, err
}

func (f *fakeAPI) AddRoom(ctx context.Context, in client.RoomInput) (*client.Room, error) {
	f.mu.Lock()
	f.adds = append(f.adds, in)
	fn := f.addFn
	f.mu.Unlock()
	if fn != nil {
		fn(ctx)
	}
	return &client.Room{ID: "new"}, f.saveErr
}

func (f *fakeAPI) EditRoom(_ context.Context, id string, in client.RoomInput) (*client.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.edits == nil {
		f.edits = map[string]client.RoomInput{}
	}
	f.edits[id] = in
	return &client.Room{ID: id}, f.saveErr
}

func (f *fakeAPI) DeleteRoom(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	return f.saveErr
}

func newDashboard(api API, user *client.User, ui *toasts) *Dashboard {
	return New(Params{API: api, User: user, Notifier: ui, Confirmer: ui, Logger: zap.NewNop()})
}

func TestOpenFetchesForUser(t *testing.T) {
	api := &fakeAPI{rooms: []client.Room{{ID: "1", GuestName: "Bob"}}}
	d := newDashboard(api, alice, &toasts{})
	d.Open(context.Background())
	assert.Equal(t, 1, api.lists)
	assert.Equal(t, api.rooms, d.Rooms())

	none := &fakeAPI{}
	newDashboard(none, &client.User{Name: "NoMail"}, &toasts{}).Open(context.Background())
	assert.Zero(t, none.lists)
}

func TestFetchFailureKeepsList(t *testing.T) {
	api := &fakeAPI{rooms: []client.Room{{ID: "1"}}}
	ui := &toasts{}
	d := newDashboard(api, alice, ui)
	require.True(t, d.Refresh(context.Background()))

	api.listErr = errors.New("down")
	assert.False(t, d.Refresh(context.Background()))
	assert.Len(t, d.Rooms(), 1)
	assert.Equal(t, []string{"Failed to fetch rooms"}, ui.errors)
}

func TestBlankFieldSendsNothing(t *testing.T) {
	for _, draft := range []Draft{
		{},
		{GuestName: "Alice", Hotel: "Deluxe", RoomNumber: "   "},
		{GuestName: " ", Hotel: "Deluxe", RoomNumber: "101"},
		{GuestName: "Alice", Hotel: "\t", RoomNumber: "101"},
	} {
		api := &fakeAPI{}
		ui := &toasts{}
		d := newDashboard(api, alice, ui)
		d.SetDraft(draft)
		assert.Equal(t, Invalid, d.Submit(context.Background()))
		assert.Empty(t, api.adds)
		assert.Zero(t, api.lists)
		assert.Equal(t, []string{"All fields are required and cannot be empty!"}, ui.errors)
	}
}

func TestSubmitWithoutUserLogsOut(t *testing.T) {
	api := &fakeAPI{}
	ui := &toasts{}
	loggedOut := false
	d := New(Params{API: api, Notifier: ui, OnLogout: func() { loggedOut = true }})
	d.SetDraft(Draft{GuestName: "A", Hotel: "B", RoomNumber: "1"})

	assert.Equal(t, Unauthenticated, d.Submit(context.Background()))
	assert.True(t, loggedOut)
	assert.Empty(t, api.adds)
	assert.Equal(t, []string{"User not authenticated. Please log in again."}, ui.errors)
}

func TestCreatePostsThenRefetches(t *testing.T) {
	type call struct {
		method string
		path   string
		query  string
		body   map[string]string
	}
	var (
		mu    sync.Mutex
		calls []call
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := call{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
		if r.Body != nil && r.Method == http.MethodPost {
			_ = json.NewDecoder(r.Body).Decode(&c.body)
		}
		mu.Lock()
		calls = append(calls, c)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"_id":"r1","guestName":"Alice","hotel":"Deluxe","roomNumber":"101","createdBy":"a@x.com"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"_id":"r1","guestName":"Alice","hotel":"Deluxe","roomNumber":"101","createdBy":"a@x.com"}]`))
	}))
	t.Cleanup(srv.Close)

	ui := &toasts{}
	d := newDashboard(client.New(srv.URL, 5*time.Second, nil), alice, ui)
	d.SetDraft(Draft{GuestName: "Alice", Hotel: "Deluxe", RoomNumber: "101"})
	require.Equal(t, Done, d.Submit(context.Background()))

	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodPost, calls[0].method)
	assert.Equal(t, "/addRoom", calls[0].path)
	assert.Equal(t, map[string]string{
		"guestName":  "Alice",
		"hotel":      "Deluxe",
		"roomNumber": "101",
		"createdBy":  "a@x.com",
	}, calls[0].body)
	assert.Equal(t, http.MethodGet, calls[1].method)
	assert.Equal(t, "/viewRooms", calls[1].path)
	assert.Equal(t, "email=a%40x.com", calls[1].query)

	assert.Equal(t, []string{"Room Added Successfully"}, ui.success)
	assert.Equal(t, Draft{}, d.Draft())
	assert.Equal(t, Creating, d.Mode())
	require.Len(t, d.Rooms(), 1)
	assert.Equal(t, "r1", d.Rooms()[0].ID)
}

func TestEditThenUpdate(t *testing.T) {
	api := &fakeAPI{}
	ui := &toasts{}
	d := newDashboard(api, alice, ui)

	d.Edit(client.Room{ID: "r7", GuestName: "Bob", Hotel: "Suite", RoomNumber: "7", CreatedBy: "a@x.com"})
	assert.Equal(t, Draft{GuestName: "Bob", Hotel: "Suite", RoomNumber: "7"}, d.Draft())
	assert.Equal(t, Editing("r7"), d.Mode())
	assert.Equal(t, "Update Room", d.SubmitLabel())
	assert.Zero(t, api.lists)
	assert.Empty(t, api.edits)

	d.SetDraft(Draft{GuestName: "Bobby", Hotel: "Suite", RoomNumber: "7"})
	require.Equal(t, Done, d.Submit(context.Background()))
	assert.Equal(t, client.RoomInput{GuestName: "Bobby", Hotel: "Suite", RoomNumber: "7", CreatedBy: "a@x.com"}, api.edits["r7"])
	assert.Empty(t, api.adds)
	assert.Equal(t, []string{"Room Updated Successfully"}, ui.success)
	assert.Equal(t, Draft{}, d.Draft())
	assert.Equal(t, Creating, d.Mode())
	assert.Equal(t, "Add Room", d.SubmitLabel())
	assert.Equal(t, 1, api.lists)
}

func TestNewRoomResetsForm(t *testing.T) {
	d := newDashboard(&fakeAPI{}, alice, &toasts{})
	d.Edit(client.Room{ID: "r1", GuestName: "A", Hotel: "B", RoomNumber: "1"})
	d.NewRoom()
	assert.Equal(t, Draft{}, d.Draft())
	assert.False(t, d.Mode().Editing())
}

func TestSaveFailureMessages(t *testing.T) {
	api := &fakeAPI{saveErr: &client.APIError{StatusCode: 400, Message: "roomNumber taken"}}
	ui := &toasts{}
	d := newDashboard(api, alice, ui)
	draft := Draft{GuestName: "A", Hotel: "B", RoomNumber: "1"}
	d.SetDraft(draft)
	assert.Equal(t, Failed, d.Submit(context.Background()))

	api.saveErr = &client.APIError{StatusCode: 500}
	assert.Equal(t, Failed, d.Submit(context.Background()))

	api.saveErr = errors.New("")
	assert.Equal(t, Failed, d.Submit(context.Background()))

	assert.Equal(t, []string{
		"roomNumber taken",
		"request failed with status code 500",
		"Failed to add room",
	}, ui.errors)
	assert.Equal(t, draft, d.Draft())
	assert.Zero(t, api.lists)
}

func TestConcurrentSubmitIsDropped(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	api := &fakeAPI{addFn: func(context.Context) {
		close(entered)
		<-release
	}}
	d := newDashboard(api, alice, &toasts{})
	d.SetDraft(Draft{GuestName: "A", Hotel: "B", RoomNumber: "1"})

	first := make(chan Result, 1)
	go func() { first <- d.Submit(context.Background()) }()
	<-entered

	assert.True(t, d.Submitting())
	assert.Equal(t, "Submitting...", d.SubmitLabel())
	assert.Equal(t, Busy, d.Submit(context.Background()))

	close(release)
	assert.Equal(t, Done, <-first)
	assert.Len(t, api.adds, 1)
	assert.False(t, d.Submitting())
}

func TestStaleFetchIsDropped(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	oldList := []client.Room{{ID: "old"}}
	newList := []client.Room{{ID: "new"}}
	api := &fakeAPI{listFn: func(_ context.Context, call int) ([]client.Room, error) {
		if call == 1 {
			close(entered)
			<-release
			return oldList, nil
		}
		return newList, nil
	}}
	d := newDashboard(api, alice, &toasts{})

	slow := make(chan bool, 1)
	go func() { slow <- d.Refresh(context.Background()) }()
	<-entered

	require.True(t, d.Refresh(context.Background()))
	close(release)
	assert.False(t, <-slow)
	assert.Equal(t, newList, d.Rooms())
}

func TestCloseCancelsInFlight(t *testing.T) {
	entered := make(chan struct{})
	api := &fakeAPI{listFn: func(ctx context.Context, _ int) ([]client.Room, error) {
		close(entered)
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	ui := &toasts{}
	d := newDashboard(api, alice, ui)

	done := make(chan bool, 1)
	go func() { done <- d.Refresh(context.Background()) }()
	<-entered
	d.Close()

	select {
	case applied := <-done:
		assert.False(t, applied)
	case <-time.After(5 * time.Second):
		t.Fatal("refresh not cancelled")
	}
	assert.Empty(t, ui.errors)
	assert.False(t, d.Refresh(context.Background()))
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	api := &fakeAPI{}
	ui := &toasts{answer: false}
	d := newDashboard(api, alice, ui)
	assert.Equal(t, Cancelled, d.Delete(context.Background(), "r1"))
	assert.Equal(t, []string{"Are you sure you want to delete this room?"}, ui.asked)
	assert.Empty(t, api.deletes)
}

func TestDeleteFailure(t *testing.T) {
	api := &fakeAPI{saveErr: errors.New("boom")}
	ui := &toasts{answer: true}
	d := newDashboard(api, alice, ui)
	assert.Equal(t, Failed, d.Delete(context.Background(), "r1"))
	assert.Equal(t, []string{"Failed to delete room"}, ui.errors)
	assert.Zero(t, api.lists)
}

func TestDeleteAgainstBackend(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mem := repository.NewMemoryStore()
	stores := &database.Stores{Users: mem.Users(), Rooms: mem.Rooms()}
	srv := httptest.NewServer(routes.NewEngine(stores, auth.NewTokens("test-secret", time.Hour), zap.NewNop()))
	t.Cleanup(srv.Close)

	ui := &toasts{answer: true}
	d := newDashboard(client.New(srv.URL, 5*time.Second, nil), alice, ui)
	for _, n := range []string{"101", "102"} {
		d.SetDraft(Draft{GuestName: "Guest " + n, Hotel: "Deluxe", RoomNumber: n})
		require.Equal(t, Done, d.Submit(context.Background()))
	}
	rooms := d.Rooms()
	require.Len(t, rooms, 2)
	assert.Equal(t, "101", rooms[0].RoomNumber)

	first, ok := d.RoomAt(1)
	require.True(t, ok)
	require.Equal(t, Done, d.Delete(context.Background(), first.ID))

	rooms = d.Rooms()
	require.Len(t, rooms, 1)
	assert.Equal(t, "102", rooms[0].RoomNumber)
	assert.Contains(t, ui.success, "Room Deleted Successfully")

	_, ok = d.RoomAt(2)
	assert.False(t, ok)
	_, ok = d.RoomAt(0)
	assert.False(t, ok)
}

func TestLogoutAndHeading(t *testing.T) {
	out := 0
	d := New(Params{API: &fakeAPI{}, User: alice, OnLogout: func() { out++ }})
	assert.Equal(t, "Hotel Room Management for Alice", d.Heading())
	d.Logout()
	assert.Equal(t, 1, out)
	assert.Equal(t, "Hotel Room Management for ", New(Params{API: &fakeAPI{}}).Heading())
}
