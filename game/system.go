package game

// System is a behavior that runs once per scheduler frame. Systems read the frame's session and
// push commands or deferred callbacks; they never modify the session directly. Custom state
// fields on a system persist between frames.
type System interface {
	Execute(frame *Frame)
}

// Frame is the context handed to every system during one scheduler pass.
type Frame struct {
	DeltaTime float64
	Commands  *Commands
	// Session is the state at the start of the frame. Queued commands are validated against the
	// scheduler's current session when the frame is flushed, not against this copy.
	Session   Session
	Scheduler *Scheduler
}

// Observer is notified of every command applied by a scheduler.
type Observer interface {
	Observe(session Session, outcome Outcome)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(session Session, outcome Outcome)

func (f ObserverFunc) Observe(session Session, outcome Outcome) {
	f(session, outcome)
}
