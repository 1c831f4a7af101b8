// Package session drives the login / signup form.
package session

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/zaqqye/hotel_rooms/internal/client"
)

type Mode int

const (
	Login Mode = iota
	Signup
)

func (m Mode) String() string {
	if m == Signup {
		return "Sign Up"
	}
	return "Login"
}

// Authenticator is the part of the backend client the form needs.
type Authenticator interface {
	Login(ctx context.Context, creds client.Credentials) (*client.AuthResult, error)
	Signup(ctx context.Context, reg client.Registration) (*client.AuthResult, error)
}

type Form struct {
	Name     string
	Email    string
	Phone    string
	Location string
	Password string
}

type Outcome int

const (
	// Invalid means local validation failed and nothing was sent.
	Invalid Outcome = iota
	// Rejected means the backend answered without success.
	Rejected
	// Failed means the request could not be completed.
	Failed
	Authenticated
)

const (
	msgCredentialsRequired = "Email and password are required!"
	msgSignupFields        = "All fields are required for signup!"
	msgPhoneNumeric        = "Phone must be a valid number!"
)

type Controller struct {
	api             Authenticator
	onAuthenticated func(ctx context.Context, user *client.User)
	logger          *zap.Logger

	mu     sync.Mutex
	mode   Mode
	form   Form
	status string
}

// New returns a controller in Login mode. onAuthenticated runs after every
// successful login or signup with the user the backend returned.
func New(api Authenticator, onAuthenticated func(ctx context.Context, user *client.User), logger *zap.Logger) *Controller {
	if api == nil {
		panic("session: nil Authenticator")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if onAuthenticated == nil {
		onAuthenticated = func(context.Context, *client.User) {}
	}
	return &Controller{api: api, onAuthenticated: onAuthenticated, logger: logger}
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Toggle switches between Login and Signup. Typed values are kept.
func (c *Controller) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == Login {
		c.mode = Signup
	} else {
		c.mode = Login
	}
}

func (c *Controller) ToggleLabel() string {
	if c.Mode() == Signup {
		return "Already registered? Login"
	}
	return "Not signed up yet? Sign Up"
}

func (c *Controller) Heading() string {
	return c.Mode().String() + " to Hostel Management"
}

func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

func (c *Controller) SetForm(f Form) {
	c.mu.Lock()
	c.form = f
	c.mu.Unlock()
}

func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) setStatus(s string) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

// Submit validates the form and, if it passes, sends one login or signup
// request. Every failure ends up in Status; none is returned as an error.
func (c *Controller) Submit(ctx context.Context) Outcome {
	c.mu.Lock()
	mode, f := c.mode, c.form
	c.mu.Unlock()

	if msg := validate(mode, f); msg != "" {
		c.setStatus(msg)
		return Invalid
	}

	var (
		res *client.AuthResult
		err error
	)
	if mode == Signup {
		res, err = c.api.Signup(ctx, client.Registration{
			Name:     f.Name,
			Email:    f.Email,
			Phone:    f.Phone,
			Location: f.Location,
			Password: f.Password,
		})
	} else {
		res, err = c.api.Login(ctx, client.Credentials{Email: f.Email, Password: f.Password})
	}

	if err != nil {
		if msg, ok := client.ServerMessage(err); ok {
			c.setStatus(msg)
			return Rejected
		}
		c.logger.Warn("authentication request failed", zap.String("mode", mode.String()), zap.Error(err))
		c.setStatus("Error: " + err.Error())
		return Failed
	}

	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = "Login Failed"
			if mode == Signup {
				msg = "Signup Failed"
			}
		}
		c.setStatus(msg)
		return Rejected
	}

	if mode == Signup {
		c.setStatus("Signup Successful!")
	} else {
		c.setStatus("Login Successful!")
	}
	c.logger.Info("authenticated", zap.String("mode", mode.String()), zap.String("email", f.Email))
	c.onAuthenticated(ctx, res.User)
	return Authenticated
}

func validate(mode Mode, f Form) string {
	if f.Email == "" || f.Password == "" {
		return msgCredentialsRequired
	}
	if mode != Signup {
		return ""
	}
	if f.Name == "" || f.Phone == "" || f.Location == "" {
		return msgSignupFields
	}
	if !numeric(f.Phone) {
		return msgPhoneNumeric
	}
	return ""
}

// numeric accepts what a number input would: a finite decimal, optionally
// padded with spaces.
func numeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	v, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(v) && !math.IsInf(v, 0)
}
