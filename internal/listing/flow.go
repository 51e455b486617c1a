package listing

import (
	"errors"
	"fmt"
)

// State is one screen of the scan workflow.
type State string

const (
	StateUpload            State = "upload"
	StateProcessing        State = "processing"
	StateConfirmation      State = "confirmation"
	StateLocationSelection State = "location_selection"
	StateResults           State = "results"
	StateFailed            State = "failed"
)

// Event advances the workflow between screens.
type Event string

const (
	EventPhotoSubmitted     Event = "photo_submitted"
	EventConfirmationNeeded Event = "confirmation_needed"
	EventOptionsFound       Event = "options_found"
	EventNameConfirmed      Event = "name_confirmed"
	EventOptionSelected     Event = "option_selected"
	EventResolved           Event = "resolved"
	EventFailed             Event = "failed"
)

// ErrInvalidTransition is returned when an event does not apply to the
// current state.
var ErrInvalidTransition = errors.New("invalid flow transition")

// transitions is the full screen-flow table:
// upload → processing → {confirmation | location selection} → processing → results.
var transitions = map[State]map[Event]State{
	StateUpload: {
		EventPhotoSubmitted: StateProcessing,
	},
	StateProcessing: {
		EventConfirmationNeeded: StateConfirmation,
		EventOptionsFound:       StateLocationSelection,
		EventResolved:           StateResults,
		EventFailed:             StateFailed,
	},
	StateConfirmation: {
		EventNameConfirmed: StateProcessing,
		EventFailed:        StateFailed,
	},
	StateLocationSelection: {
		EventOptionSelected: StateProcessing,
		EventFailed:         StateFailed,
	},
	StateResults: {
		EventPhotoSubmitted: StateProcessing,
	},
	StateFailed: {
		EventPhotoSubmitted: StateProcessing,
	},
}

// Transition applies event to state. On an invalid pair the state is returned
// unchanged along with ErrInvalidTransition.
func Transition(state State, event Event) (State, error) {
	if next, ok := transitions[state][event]; ok {
		return next, nil
	}
	return state, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, event, state)
}

// EventFor maps a scan result to the event that drives the next screen.
func EventFor(result *ScanResult) Event {
	switch {
	case result.Decision == DecisionConfirm:
		return EventConfirmationNeeded
	case len(result.Options) > 0:
		return EventOptionsFound
	default:
		return EventResolved
	}
}
