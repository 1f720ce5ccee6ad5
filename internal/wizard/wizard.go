// Package wizard drives one donation session: pick a file, validate it,
// extract, ask for consent, donate.
package wizard

import (
	"context"
	"errors"
	"fmt"

	"ddp/internal/export"
	"ddp/internal/extract"
	"ddp/internal/services"
	"ddp/internal/table"
)

type State int

const (
	AwaitFile State = iota
	Validating
	Extracting
	AwaitConsent
	Done
)

func (s State) String() string {
	switch s {
	case AwaitFile:
		return "await_file"
	case Validating:
		return "validating"
	case Extracting:
		return "extracting"
	case AwaitConsent:
		return "await_consent"
	case Done:
		return "done"
	}
	return "unknown"
}

var ErrUnexpectedEvent = errors.New("unexpected event")

// Event is input to the machine.
type Event interface{ event() }

type (
	FileSelected struct {
		Name string
		Data []byte
	}
	FileSkipped struct{}
	Classified  struct {
		Classification services.Classification
	}
	Extracted struct {
		Result *services.Result
	}
	ExtractionFailed struct {
		Err error
	}
	ConsentGiven    struct{}
	ConsentDeclined struct{}
)

func (FileSelected) event()     {}
func (FileSkipped) event()      {}
func (Classified) event()       {}
func (Extracted) event()        {}
func (ExtractionFailed) event() {}
func (ConsentGiven) event()     {}
func (ConsentDeclined) event()  {}

// Command is output of the machine, carried out by the host.
type Command interface{ command() }

type (
	ValidateFile struct {
		Name string
		Data []byte
	}
	// RetryPrompt asks for another file. Status is the classification
	// status or "extraction_failed".
	RetryPrompt struct {
		Status string
	}
	StartExtraction struct {
		Platform extract.ID
	}
	PromptConsent struct {
		Tables []*table.Table
	}
	Donate struct {
		Key     string
		Payload []byte
	}
	Finish struct{}
)

func (ValidateFile) command()    {}
func (RetryPrompt) command()     {}
func (StartExtraction) command() {}
func (PromptConsent) command()   {}
func (Donate) command()          {}
func (Finish) command()          {}

// StatusExtractionFailed is the RetryPrompt status after a failed run.
const StatusExtractionFailed = "extraction_failed"

// Machine is the donation flow of one session. It is not safe for
// concurrent use.
type Machine struct {
	session  string
	state    State
	platform extract.ID
	tables   []*table.Table
}

func New(session string) *Machine {
	return &Machine{session: session, state: AwaitFile}
}

func (m *Machine) State() State {
	return m.state
}

// DonationKey names the stored donation of this session.
func (m *Machine) DonationKey() string {
	return fmt.Sprintf("%s-%s-data-donation", m.session, m.platform)
}

// Handle applies ev and returns the command the host must carry out next.
// An event that does not fit the current state leaves the machine
// unchanged and returns ErrUnexpectedEvent.
func (m *Machine) Handle(ev Event) (Command, error) {
	switch m.state {
	case AwaitFile:
		switch e := ev.(type) {
		case FileSelected:
			m.state = Validating
			return ValidateFile(e), nil
		case FileSkipped:
			m.state = Done
			return Finish{}, nil
		}
	case Validating:
		if e, ok := ev.(Classified); ok {
			if !e.Classification.Valid() {
				m.state = AwaitFile
				return RetryPrompt{Status: e.Classification.Status}, nil
			}
			m.platform = e.Classification.Platform
			m.state = Extracting
			return StartExtraction{Platform: m.platform}, nil
		}
	case Extracting:
		switch e := ev.(type) {
		case Extracted:
			m.tables = e.Result.Tables
			m.state = AwaitConsent
			return PromptConsent{Tables: m.tables}, nil
		case ExtractionFailed:
			m.state = AwaitFile
			return RetryPrompt{Status: StatusExtractionFailed}, nil
		}
	case AwaitConsent:
		switch ev.(type) {
		case ConsentGiven:
			payload, err := export.Payload(m.tables)
			if err != nil {
				return nil, err
			}
			m.state = Done
			return Donate{Key: m.DonationKey(), Payload: payload}, nil
		case ConsentDeclined:
			m.state = Done
			return Donate{Key: m.DonationKey(), Payload: export.Declined}, nil
		}
	}
	return nil, fmt.Errorf("%w: %T in state %s", ErrUnexpectedEvent, ev, m.state)
}

// Run feeds events into m and publishes each resulting command until the
// machine reaches Done or ctx ends. The commands channel is closed on return.
func Run(ctx context.Context, m *Machine, events <-chan Event, commands chan<- Command) error {
	defer close(commands)
	for m.state != Done {
		var ev Event
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-events:
			if !ok {
				return fmt.Errorf("events closed in state %s", m.state)
			}
			ev = e
		}

		cmd, err := m.Handle(ev)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case commands <- cmd:
		}
	}
	return nil
}
