package game

// Commands buffers the commands and callbacks produced during a frame. The scheduler applies the
// buffer once every system has run.
type Commands struct {
	queue  []Command
	defers []func(Session)
}

func newCommands() *Commands {
	return &Commands{}
}

type applied struct {
	session Session
	outcome Outcome
}

// Push queues a command. Commands are applied in the order they were pushed.
func (c *Commands) Push(cmd Command) {
	c.queue = append(c.queue, cmd)
}

// Defer queues a callback that runs after the frame's commands, receiving the resulting session.
func (c *Commands) Defer(fn func(Session)) {
	c.defers = append(c.defers, fn)
}

// apply runs every queued command against session in order and resets the queue.
func (c *Commands) apply(session Session) (Session, []applied) {
	results := make([]applied, 0, len(c.queue))
	for _, cmd := range c.queue {
		var outcome Outcome
		session, outcome = session.Step(cmd)
		results = append(results, applied{session: session, outcome: outcome})
	}
	c.queue = c.queue[:0]
	return session, results
}

func (c *Commands) runDeferred(session Session) {
	for _, fn := range c.defers {
		fn(session)
	}
	c.defers = c.defers[:0]
}
