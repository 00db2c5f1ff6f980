package notify

import (
	"errors"
	"sync"
	"time"

	"github.com/bobmcallan/blog-portal/internal/client"
	"github.com/bobmcallan/blog-portal/internal/store"
)

// Kind is the visual style of a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Toast is a user-facing notification.
type Toast struct {
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	Op      string    `json:"op"`
	At      time.Time `json:"at"`
}

type messages struct {
	ok   string
	fail string
	// failTransportOnly limits the failure toast to transport errors.
	failTransportOnly bool
}

var toastMessages = map[store.Op]messages{
	store.OpLogin:              {ok: "Successfully Login", fail: "Login failed"},
	store.OpLogout:             {ok: "Successfully Logout"},
	store.OpBlockUser:          {ok: "Successfully Blocked this user", fail: "Block user failed"},
	store.OpUnblockUser:        {ok: "Successfully unblocked this user", fail: "unblock user failed"},
	store.OpUploadProfilePhoto: {ok: "Profile photo uploaded successfully"},
	store.OpFollowUser:         {ok: "Followed successfully", fail: "You are already following this user"},
	store.OpUnfollowUser:       {ok: "Unfollowed successfully", fail: "Unfollow User Error"},
	store.OpUpdateProfile:      {ok: "Profile updated successfully"},
	store.OpUpdatePassword:     {ok: "Password Updated successfully"},
	store.OpVerifyAccount:      {ok: "Account Verified Successfully", fail: "Account verification failed"},

	store.OpCreatePost:    {ok: "Post Created"},
	store.OpEditPost:      {ok: "Post Edited successfully", fail: "Editing Failed", failTransportOnly: true},
	store.OpDeletePost:    {ok: "Post Deleted successfully", fail: "Deleting Failed"},
	store.OpToggleLike:    {fail: "Your account is been block"},
	store.OpToggleDislike: {fail: "Your account is been block"},

	store.OpCreateComment: {ok: "Comment Added Successfully", fail: "Comment added failed"},

	store.OpCreateCategory: {ok: "Category created successfully"},
	store.OpEditCategory:   {ok: "Category Edited Successfully"},

	store.OpSendEmail: {ok: "Email Sent"},
}

// ToastFor renders the toast for an outcome, if the operation has one.
func ToastFor(o Outcome) (Toast, bool) {
	m, ok := toastMessages[o.Op]
	if !ok {
		return Toast{}, false
	}

	t := Toast{Op: o.Op.String(), At: o.At}
	if o.Succeeded() {
		if m.ok == "" {
			return Toast{}, false
		}
		t.Kind, t.Message = KindSuccess, m.ok
		return t, true
	}

	if m.fail == "" {
		return Toast{}, false
	}
	if m.failTransportOnly {
		var tErr *client.TransportError
		if !errors.As(o.Err, &tErr) {
			return Toast{}, false
		}
	}
	t.Kind, t.Message = KindError, m.fail
	return t, true
}

// Toaster turns outcomes into toasts and hands them to a sink.
func Toaster(sink func(Toast)) Subscriber {
	return func(o Outcome) {
		if t, ok := ToastFor(o); ok {
			sink(t)
		}
	}
}

// Recorder keeps the most recent toasts in a bounded buffer.
type Recorder struct {
	mu    sync.Mutex
	items []Toast
	max   int
}

// NewRecorder keeps up to max toasts.
func NewRecorder(max int) *Recorder {
	if max <= 0 {
		max = 1
	}
	return &Recorder{max: max}
}

// Add appends a toast, dropping the oldest beyond capacity.
func (r *Recorder) Add(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, t)
	if len(r.items) > r.max {
		r.items = append([]Toast(nil), r.items[len(r.items)-r.max:]...)
	}
}

// Recent returns up to n toasts, newest last. n <= 0 returns all.
func (r *Recorder) Recent(n int) []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= 0 || n > len(r.items) {
		n = len(r.items)
	}
	out := make([]Toast, n)
	copy(out, r.items[len(r.items)-n:])
	return out
}
