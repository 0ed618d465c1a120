package gridsearch

// Sink receives node visual state transitions as they happen.
// It is purely observational; the engine never reads anything back from it.
type Sink interface {
	Transition(pos Pos, from, to VisualState)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(pos Pos, from, to VisualState)

func (f SinkFunc) Transition(pos Pos, from, to VisualState) { f(pos, from, to) }

// Transition is one recorded visual state change.
type Transition struct {
	Pos  Pos
	From VisualState
	To   VisualState
}

// Recorder is a Sink that keeps every transition in order.
type Recorder struct {
	Transitions []Transition
}

func (r *Recorder) Transition(pos Pos, from, to VisualState) {
	r.Transitions = append(r.Transitions, Transition{Pos: pos, From: from, To: to})
}

// Drain returns the recorded transitions and clears the log.
func (r *Recorder) Drain() []Transition {
	out := r.Transitions
	r.Transitions = nil
	return out
}
