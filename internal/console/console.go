// Package console is a line-oriented terminal front end for the app.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/zaqqye/hotel_rooms/internal/app"
	"github.com/zaqqye/hotel_rooms/internal/client"
	"github.com/zaqqye/hotel_rooms/internal/dashboard"
	"github.com/zaqqye/hotel_rooms/internal/session"
)

const title = "Hotel Management System"

// Console reads commands from in and writes views and messages to out. It
// is also the Notifier and Confirmer handed to the app.
type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	logger *zap.Logger
}

func New(in io.Reader, out io.Writer, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{in: bufio.NewScanner(in), out: out, logger: logger}
}

func (c *Console) Success(msg string) { fmt.Fprintf(c.out, "[success] %s\n", msg) }
func (c *Console) Error(msg string)   { fmt.Fprintf(c.out, "[error] %s\n", msg) }

// Confirm asks prompt and reads y or n. Anything but yes declines.
func (c *Console) Confirm(prompt string) bool {
	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
	line, ok := c.readLine()
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimRight(c.in.Text(), "\r"), true
}

// ask prompts for one field. An empty answer keeps current.
func (c *Console) ask(label, current string, secret bool) (string, bool) {
	switch {
	case current == "":
		fmt.Fprintf(c.out, "%s: ", label)
	case secret:
		fmt.Fprintf(c.out, "%s [hidden]: ", label)
	default:
		fmt.Fprintf(c.out, "%s [%s]: ", label, current)
	}
	line, ok := c.readLine()
	if !ok {
		return "", false
	}
	if line == "" {
		return current, true
	}
	return line, true
}

// Run drives a until quit, end of input or ctx is done.
func (c *Console) Run(ctx context.Context, a *app.App) error {
	fmt.Fprintln(c.out, title)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		view, d := a.Current(), a.Dashboard()
		if view == app.DashboardView && d == nil {
			view, d = a.Navigate(ctx, app.RouteDashboard), a.Dashboard()
		}
		if view == app.DashboardView {
			c.renderDashboard(d)
		} else {
			c.renderSession(a.Session())
		}

		fmt.Fprint(c.out, "> ")
		line, ok := c.readLine()
		if !ok {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := strings.ToLower(fields[0]), fields[1:]
		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		c.logger.Debug("command", zap.String("view", view.String()), zap.String("cmd", cmd))

		var handled bool
		if view == app.DashboardView {
			handled = c.dashboardCommand(ctx, d, cmd, args)
		} else {
			handled = c.sessionCommand(ctx, a.Session(), cmd)
		}
		if !handled {
			fmt.Fprintf(c.out, "unknown command %q\n", cmd)
		}
	}
}

func (c *Console) renderSession(s *session.Controller) {
	fmt.Fprintf(c.out, "\n== %s ==\n", s.Heading())
	if st := s.Status(); st != "" {
		fmt.Fprintln(c.out, st)
	}
	fmt.Fprintf(c.out, "%s (toggle)\n", s.ToggleLabel())
	fmt.Fprintln(c.out, "commands: login, signup, toggle, quit")
}

func (c *Console) sessionCommand(ctx context.Context, s *session.Controller, cmd string) bool {
	switch cmd {
	case "toggle":
		s.Toggle()
	case "login":
		if s.Mode() != session.Login {
			s.Toggle()
		}
		c.fillSession(ctx, s)
	case "signup":
		if s.Mode() != session.Signup {
			s.Toggle()
		}
		c.fillSession(ctx, s)
	default:
		return false
	}
	return true
}

func (c *Console) fillSession(ctx context.Context, s *session.Controller) {
	f := s.Form()
	var ok bool
	if s.Mode() == session.Signup {
		if f.Name, ok = c.ask("Name", f.Name, false); !ok {
			return
		}
		if f.Phone, ok = c.ask("Phone", f.Phone, false); !ok {
			return
		}
		if f.Location, ok = c.ask("Location", f.Location, false); !ok {
			return
		}
	}
	if f.Email, ok = c.ask("Email", f.Email, false); !ok {
		return
	}
	if f.Password, ok = c.ask("Password", f.Password, true); !ok {
		return
	}
	s.SetForm(f)
	fmt.Fprintf(c.out, "%s...\n", s.Mode())
	// a failed attempt shows its status with the re-rendered form
	if s.Submit(ctx) == session.Authenticated {
		fmt.Fprintln(c.out, s.Status())
	}
}

func (c *Console) renderDashboard(d *dashboard.Dashboard) {
	fmt.Fprintf(c.out, "\n== %s ==\n", d.Heading())
	rooms := d.Rooms()
	if len(rooms) == 0 {
		fmt.Fprintln(c.out, "no rooms")
	} else {
		w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Sl.No\tGuest Name\tRoom Type\tRoom Number")
		for i, r := range rooms {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, r.GuestName, r.Hotel, r.RoomNumber)
		}
		_ = w.Flush()
	}
	if m := d.Mode(); m.Editing() {
		fmt.Fprintln(c.out, "editing a room; \"new\" to start over")
	}
	fmt.Fprintln(c.out, "commands: list, add, edit <n>, delete <n>, new, logout, quit")
}

func (c *Console) dashboardCommand(ctx context.Context, d *dashboard.Dashboard, cmd string, args []string) bool {
	switch cmd {
	case "list":
		d.Refresh(ctx)
	case "new":
		d.NewRoom()
	case "add":
		c.fillRoom(ctx, d)
	case "edit":
		room, ok := c.pick(d, args)
		if !ok {
			return true
		}
		d.Edit(room)
		c.fillRoom(ctx, d)
	case "delete":
		room, ok := c.pick(d, args)
		if !ok {
			return true
		}
		d.Delete(ctx, room.ID)
	case "logout":
		d.Logout()
	default:
		return false
	}
	return true
}

// pick resolves the serial number in args to a listed room.
func (c *Console) pick(d *dashboard.Dashboard, args []string) (client.Room, bool) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "usage: <command> <n>")
		return client.Room{}, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "not a number: %s\n", args[0])
		return client.Room{}, false
	}
	room, ok := d.RoomAt(n)
	if !ok {
		fmt.Fprintf(c.out, "no room %d\n", n)
		return client.Room{}, false
	}
	return room, true
}

func (c *Console) fillRoom(ctx context.Context, d *dashboard.Dashboard) {
	draft := d.Draft()
	var ok bool
	if draft.GuestName, ok = c.ask("Guest Name", draft.GuestName, false); !ok {
		return
	}
	if draft.Hotel, ok = c.ask("Room Type", draft.Hotel, false); !ok {
		return
	}
	if draft.RoomNumber, ok = c.ask("Room Number", draft.RoomNumber, false); !ok {
		return
	}
	d.SetDraft(draft)
	fmt.Fprintf(c.out, "%s...\n", d.SubmitLabel())
	d.Submit(ctx)
}
