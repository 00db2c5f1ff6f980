// Package actions runs the blog operations: each one drives its store slice
// through pending, fulfilled or rejected, raises its reset flag and publishes
// the outcome.
package actions

import (
	"context"
	"errors"

	"github.com/bobmcallan/blog-portal/internal/client"
	"github.com/bobmcallan/blog-portal/internal/common"
	"github.com/bobmcallan/blog-portal/internal/models"
	"github.com/bobmcallan/blog-portal/internal/notify"
	"github.com/bobmcallan/blog-portal/internal/session"
	"github.com/bobmcallan/blog-portal/internal/store"
	"github.com/bobmcallan/blog-portal/internal/upload"
)

// ErrNoUser is returned when an operation needs a user id and neither the
// input nor the session provides one.
var ErrNoUser = errors.New("no user id given and session is anonymous")

// Dispatcher runs operations against the backend and records them in the store.
type Dispatcher struct {
	client    *client.BlogClient
	store     *store.Store
	bus       *notify.Bus
	persister *session.Persister
	uploads   *upload.Preparer
	logger    *common.Logger
}

// NewDispatcher wires a dispatcher. uploads may be nil to send images unchanged.
func NewDispatcher(c *client.BlogClient, s *store.Store, bus *notify.Bus, p *session.Persister, uploads *upload.Preparer, logger *common.Logger) *Dispatcher {
	return &Dispatcher{
		client:    c,
		store:     s,
		bus:       bus,
		persister: p,
		uploads:   uploads,
		logger:    logger,
	}
}

// Store returns the dispatcher's store.
func (d *Dispatcher) Store() *store.Store { return d.store }

// run drives op through its lifecycle around call.
func run[T any](d *Dispatcher, op store.Op, call func() (T, error)) (T, error) {
	d.store.Apply(store.Event{Op: op, Phase: store.Pending})

	v, err := call()
	if err != nil {
		var zero T
		return zero, d.reject(op, err)
	}

	d.store.Apply(store.Event{Op: op, Phase: store.Fulfilled, Payload: v})
	if f, ok := op.ResetFlag(); ok {
		d.store.Apply(store.Reset(f))
	}
	d.bus.Publish(notify.Outcome{Op: op})
	return v, nil
}

// reject records err on op's slice and returns it unchanged. An APIError
// fills both appErr and serverErr; anything else only serverErr.
func (d *Dispatcher) reject(op store.Op, err error) error {
	evt := store.Event{Op: op, Phase: store.Rejected, ServerErr: err.Error()}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		evt.AppErr = apiErr.Message
	}

	d.store.Apply(evt)
	d.bus.Publish(notify.Outcome{Op: op, Err: err})
	return err
}

func (d *Dispatcher) prepareImage(img *models.ImageFile) (*models.ImageFile, error) {
	if d.uploads == nil || img == nil {
		return img, nil
	}
	return d.uploads.Prepare(img)
}

// IsRecoverable reports whether err came from a backend response (APIError)
// rather than a transport failure.
func IsRecoverable(err error) bool {
	var apiErr *client.APIError
	return errors.As(err, &apiErr)
}

func userOrSession(id string, sess session.Session) (string, error) {
	if id != "" {
		return id, nil
	}
	if sess.UserID != "" {
		return sess.UserID, nil
	}
	return "", ErrNoUser
}

// background is used for persistence that must outlive a cancelled request.
func background(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
