package store

// Phase is the lifecycle stage of an operation.
type Phase int

const (
	Pending Phase = iota + 1
	Fulfilled
	Rejected
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// Action is something Store.Apply accepts: an Event or a ResetEvent.
type Action interface {
	apply(s *State)
}

// Event is one lifecycle transition of an operation. Payload is set on
// Fulfilled; AppErr and ServerErr on Rejected.
type Event struct {
	Op        Op
	Phase     Phase
	Payload   interface{}
	AppErr    string
	ServerErr string
}

// ResetEvent raises a one-shot flag.
type ResetEvent struct {
	Flag Flag
}

// Reset returns the action raising f.
func Reset(f Flag) ResetEvent {
	return ResetEvent{Flag: f}
}

func (e ResetEvent) apply(s *State) {
	if p := s.flag(e.Flag); p != nil {
		*p = true
	}
}

func (e Event) apply(s *State) {
	st := s.status(e.Op)
	if st.loading == nil {
		return
	}

	switch e.Phase {
	case Pending:
		*st.loading = true
	case Rejected:
		*st.loading = false
		*st.appErr = e.AppErr
		*st.serverErr = e.ServerErr
	case Fulfilled:
		*st.loading = false
		*st.appErr = ""
		*st.serverErr = ""
		s.store(e.Op, e.Payload)
	}
}
