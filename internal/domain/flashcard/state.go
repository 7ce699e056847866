package flashcard

// Phase names the active variant of a State.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseInFlight   Phase = "in_flight"
	PhaseSuccess    Phase = "success"
	PhaseEmpty      Phase = "empty"
	PhaseFailed     Phase = "failed"
)

// State is the tagged GenerationState variant. Exactly one concrete type is
// active at a time; only Success carries cards.
type State interface {
	Phase() Phase
	// Submission returns the ID of the submission that produced the state, or
	// "" for Idle.
	Submission() string
	isState()
}

// Idle is the state before any submission.
type Idle struct{}

// Validating is the instantaneous input-check state every submission passes through.
type Validating struct {
	SubmissionID string
}

// InFlight means the request was sent and its resolution is pending.
type InFlight struct {
	SubmissionID string
	Topic        string
}

// Success holds a non-empty ordered card sequence.
type Success struct {
	SubmissionID string
	Topic        string
	cards        []Card
}

// Empty means the service answered without any usable cards.
type Empty struct {
	SubmissionID string
	Topic        string
}

// Failed carries the user-facing message of a validation or transport error.
type Failed struct {
	SubmissionID string
	Message      string
	Reason       ErrorCode
}

func (Idle) Phase() Phase       { return PhaseIdle }
func (Validating) Phase() Phase { return PhaseValidating }
func (InFlight) Phase() Phase   { return PhaseInFlight }
func (Success) Phase() Phase    { return PhaseSuccess }
func (Empty) Phase() Phase      { return PhaseEmpty }
func (Failed) Phase() Phase     { return PhaseFailed }

func (Idle) Submission() string         { return "" }
func (s Validating) Submission() string { return s.SubmissionID }
func (s InFlight) Submission() string   { return s.SubmissionID }
func (s Success) Submission() string    { return s.SubmissionID }
func (s Empty) Submission() string      { return s.SubmissionID }
func (s Failed) Submission() string     { return s.SubmissionID }

func (Idle) isState()       {}
func (Validating) isState() {}
func (InFlight) isState()   {}
func (Success) isState()    {}
func (Empty) isState()      {}
func (Failed) isState()     {}

// Cards returns a copy of the generated cards.
func (s Success) Cards() []Card {
	return cloneCards(s.cards)
}

// Resolved builds the terminal state for a successful call. A zero-length card
// list yields Empty, keeping Success non-empty by construction.
func Resolved(submissionID, topic string, cards []Card) State {
	if len(cards) == 0 {
		return Empty{SubmissionID: submissionID, Topic: topic}
	}
	return Success{SubmissionID: submissionID, Topic: topic, cards: cloneCards(cards)}
}

// IsTerminal reports whether the state ends a submission.
func IsTerminal(s State) bool {
	switch s.(type) {
	case Success, Empty, Failed:
		return true
	default:
		return false
	}
}
