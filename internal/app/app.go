// Package app is the composition root of the front end: it owns the
// logged-in state and decides which view a route shows.
package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/zaqqye/hotel_rooms/internal/client"
	"github.com/zaqqye/hotel_rooms/internal/dashboard"
	"github.com/zaqqye/hotel_rooms/internal/session"
)

const (
	RouteHome      = "/"
	RouteDashboard = "/dashboard"
)

type View int

const (
	SessionView View = iota
	DashboardView
)

func (v View) String() string {
	if v == DashboardView {
		return "dashboard"
	}
	return "session"
}

// Backend is everything the views call on the API client.
type Backend interface {
	session.Authenticator
	dashboard.API
	SetToken(token string)
}

type Params struct {
	API       Backend
	Notifier  dashboard.Notifier
	Confirmer dashboard.Confirmer
	Logger    *zap.Logger
}

type App struct {
	api     Backend
	notify  dashboard.Notifier
	confirm dashboard.Confirmer
	logger  *zap.Logger

	mu       sync.Mutex
	session  *session.Controller
	loggedIn bool
	user     *client.User
	route    string
	dash     *dashboard.Dashboard
}

func New(p Params) *App {
	if p.API == nil {
		panic("app: nil Backend")
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	a := &App{
		api:     p.API,
		notify:  p.Notifier,
		confirm: p.Confirmer,
		logger:  p.Logger,
		route:   RouteHome,
	}
	a.session = a.newSession()
	return a
}

func (a *App) newSession() *session.Controller {
	return session.New(a.api, a.authenticated, a.logger.Named("session"))
}

func (a *App) authenticated(ctx context.Context, user *client.User) {
	a.SetUser(user)
	a.SetLoggedIn(true)
	a.Navigate(ctx, RouteDashboard)
}

// logout drops the login state. The session form starts over empty.
func (a *App) logout() {
	a.mu.Lock()
	a.loggedIn = false
	a.session = a.newSession()
	a.mu.Unlock()
	a.api.SetToken("")
	a.logger.Info("logged out")
	a.Navigate(context.Background(), RouteHome)
}

func (a *App) Session() *session.Controller {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

// Dashboard returns the open dashboard, or nil when the session view is shown.
func (a *App) Dashboard() *dashboard.Dashboard {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dash
}

func (a *App) SetUser(user *client.User) {
	a.mu.Lock()
	a.user = user
	a.mu.Unlock()
}

func (a *App) User() *client.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

func (a *App) SetLoggedIn(v bool) {
	a.mu.Lock()
	a.loggedIn = v
	a.mu.Unlock()
}

func (a *App) LoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loggedIn
}

// Resolve applies the route guards and returns the view shown together
// with the route it lands on.
func (a *App) Resolve(route string) (View, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.resolveLocked(route)
}

// The dashboard needs both the flag and a user; anything else is the
// session form at "/". Unknown routes fall back to "/".
func (a *App) resolveLocked(string) (View, string) {
	if a.loggedIn && a.user != nil {
		return DashboardView, RouteDashboard
	}
	return SessionView, RouteHome
}

// Navigate moves to route. Entering the dashboard builds a fresh one for
// the current user and loads its rooms; leaving it closes it.
func (a *App) Navigate(ctx context.Context, route string) View {
	a.mu.Lock()
	view, resolved := a.resolveLocked(route)
	a.route = resolved

	var opened, closed *dashboard.Dashboard
	switch {
	case view == DashboardView && (a.dash == nil || a.dash.User() != a.user):
		closed = a.dash
		a.dash = dashboard.New(dashboard.Params{
			API:       a.api,
			User:      a.user,
			Notifier:  a.notify,
			Confirmer: a.confirm,
			OnLogout:  a.logout,
			Logger:    a.logger.Named("dashboard"),
		})
		opened = a.dash
	case view == SessionView && a.dash != nil:
		closed, a.dash = a.dash, nil
	}
	a.mu.Unlock()

	if route != resolved {
		a.logger.Debug("route redirected", zap.String("from", route), zap.String("to", resolved))
	}
	if closed != nil {
		closed.Close()
	}
	if opened != nil {
		opened.Open(ctx)
	}
	return view
}

// Route is the route last navigated to, after redirects.
func (a *App) Route() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

// Current is the view for the current route under the current state.
func (a *App) Current() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	view, _ := a.resolveLocked(a.route)
	return view
}

// Close releases the open dashboard, if any.
func (a *App) Close() {
	a.mu.Lock()
	d := a.dash
	a.dash = nil
	a.mu.Unlock()
	if d != nil {
		d.Close()
	}
}
