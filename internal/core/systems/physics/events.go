package physics

// Event types published by the arena.
const (
	EventBodyAdded      = "body.added"
	EventArenaSealed    = "arena.sealed"
	EventFrameStepped   = "frame.stepped"
	EventPointNonFinite = "point.nonfinite"
)

// EventSource is the Source of every arena event.
const EventSource = "physics.arena"

// BodyAddedData is the payload of EventBodyAdded.
type BodyAddedData struct {
	BodyID string
	Name   string
	Points int
}

// ArenaSealedData is the payload of EventArenaSealed.
type ArenaSealedData struct {
	Bodies      int
	Constraints int
}

// FrameSteppedData is the payload of EventFrameStepped.
type FrameSteppedData struct {
	Frame    uint64
	Time     float64
	Checksum uint64
}

// NonFiniteData is the payload of EventPointNonFinite.
type NonFiniteData struct {
	Frame  uint64
	BodyID string
	Point  int
}
