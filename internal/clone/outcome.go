// internal/clone/outcome.go
package clone

// Outcome is the result of replaying one challenge into a destination.
// A failed outcome may still have DestID set: the shell was created but
// a later step (patch, flags, attachment) failed, and the partial
// challenge is deliberately left in place rather than rolled back.
type Outcome struct {
	SourceID int
	DestID   int
	Title    string
	Err      error
}

// Failed reports whether any step of the replay went wrong.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Tally counts successes and failures across a batch.
func Tally(outcomes []Outcome) (succeeded, failed int) {
	for _, o := range outcomes {
		if o.Failed() {
			failed++
		} else {
			succeeded++
		}
	}
	return succeeded, failed
}
