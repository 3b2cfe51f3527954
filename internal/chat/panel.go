// Package chat implements the chat panel controller: the transcript, the
// composition buffer, the pending-request flag and the panel visibility.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/apex/log"

	"github.com/rashisahu/folio/internal/models"
)

// FallbackReply is appended as the assistant entry whenever a round trip fails
const FallbackReply = "Backend error! Is the assistant service running?"

// Sender performs one round trip with the remote assistant
type Sender interface {
	Send(ctx context.Context, message string) (string, error)
}

// Observer is notified with the index of the newest transcript entry after
// every transcript mutation. The view uses it to scroll to the latest entry.
type Observer func(latest int)

// Visibility is the panel visibility state
type Visibility int

const (
	Closed Visibility = iota
	Open
)

func (v Visibility) String() string {
	switch v {
	case Closed:
		return "closed"
	case Open:
		return "open"
	default:
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
}

// Round identifies one in-flight submission
type Round struct {
	ID   uint64
	Text string
}

// State is a point-in-time copy of the panel state for rendering
type State struct {
	Messages   []models.Message
	Input      string
	Pending    bool
	Visibility Visibility
}

// Panel is the chat panel controller. It owns the transcript exclusively;
// views read it through Messages or State. Safe for concurrent use.
//
// At most one round is in flight: Begin and Submit reject new submissions
// while a round is pending.
type Panel struct {
	mu         sync.Mutex
	sender     Sender
	messages   []models.Message
	input      string
	pending    bool
	visibility Visibility
	generation uint64
	observer   Observer
	fallback   string
	logger     log.Interface
}

// PanelOption configures a Panel
type PanelOption func(*Panel)

// WithObserver registers the transcript observer
func WithObserver(fn Observer) PanelOption {
	return func(p *Panel) {
		p.observer = fn
	}
}

// WithFallback overrides the fallback reply text
func WithFallback(text string) PanelOption {
	return func(p *Panel) {
		p.fallback = text
	}
}

// WithLogger sets the logger used to report failed round trips
func WithLogger(logger log.Interface) PanelOption {
	return func(p *Panel) {
		p.logger = logger
	}
}

// NewPanel creates a closed, idle panel with an empty transcript
func NewPanel(sender Sender, opts ...PanelOption) *Panel {
	p := &Panel{
		sender:     sender,
		messages:   []models.Message{},
		visibility: Closed,
		fallback:   FallbackReply,
		logger:     log.Log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Observe replaces the transcript observer. Passing nil removes it.
func (p *Panel) Observe(fn Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observer = fn
}

// SetInput replaces the composition buffer
func (p *Panel) SetInput(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.input = text
}

// Input returns the composition buffer
func (p *Panel) Input() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.input
}

// Pending reports whether a round trip is in flight
func (p *Panel) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// Messages returns a copy of the transcript
func (p *Panel) Messages() []models.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Message, len(p.messages))
	copy(out, p.messages)
	return out
}

// Len returns the transcript length
func (p *Panel) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

// State returns a copy of the whole panel state
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	msgs := make([]models.Message, len(p.messages))
	copy(msgs, p.messages)
	return State{
		Messages:   msgs,
		Input:      p.input,
		Pending:    p.pending,
		Visibility: p.visibility,
	}
}

// Visibility returns the current visibility state
func (p *Panel) Visibility() Visibility {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visibility
}

// IsOpen reports whether the panel is open
func (p *Panel) IsOpen() bool {
	return p.Visibility() == Open
}

// Open shows the panel
func (p *Panel) Open() {
	p.setVisibility(Open)
}

// Close hides the panel. An in-flight round still settles.
func (p *Panel) Close() {
	p.setVisibility(Closed)
}

// Toggle flips the panel visibility
func (p *Panel) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.visibility == Open {
		p.visibility = Closed
	} else {
		p.visibility = Open
	}
}

func (p *Panel) setVisibility(v Visibility) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visibility = v
}

// Begin starts a submission: it appends the user entry, clears the
// composition buffer and sets the pending flag. It returns false without
// side effects when text is blank or another round is pending.
func (p *Panel) Begin(text string) (Round, bool) {
	if strings.TrimSpace(text) == "" {
		return Round{}, false
	}

	p.mu.Lock()
	if p.pending {
		inFlight := p.generation
		p.mu.Unlock()
		p.logger.WithField("generation", inFlight).Debug("submission rejected: round pending")
		return Round{}, false
	}

	p.messages = append(p.messages, models.UserMessage(text))
	p.input = ""
	p.pending = true
	p.generation++
	round := Round{ID: p.generation, Text: text}
	latest, observer := len(p.messages)-1, p.observer
	p.mu.Unlock()

	notify(observer, latest)
	return round, true
}

// Exchange performs the round trip for r. A panic in the sender is
// recovered and reported as an error.
func (p *Panel) Exchange(ctx context.Context, r Round) (reply string, err error) {
	if p.sender == nil {
		return "", fmt.Errorf("no assistant configured")
	}

	defer func() {
		if rec := recover(); rec != nil {
			reply = ""
			err = fmt.Errorf("assistant panicked: %v", rec)
		}
	}()

	return p.sender.Send(ctx, r.Text)
}

// Settle completes round r: it appends the reply, or the fallback text when
// err is non-nil, and clears the pending flag. Settling a round that is not
// the one in flight is ignored and returns false.
func (p *Panel) Settle(r Round, reply string, err error) bool {
	p.mu.Lock()
	if !p.pending || r.ID != p.generation {
		p.mu.Unlock()
		return false
	}

	content := reply
	if err != nil {
		content = p.fallback
	}
	p.messages = append(p.messages, models.AssistantMessage(content))
	p.pending = false
	latest, observer := len(p.messages)-1, p.observer
	p.mu.Unlock()

	if err != nil {
		p.logger.WithError(err).WithField("generation", r.ID).Warn("assistant round trip failed")
	}

	notify(observer, latest)
	return true
}

// Submit runs a whole submission cycle and blocks until the round trip
// settles. Failures never escape: they become the fallback entry. It
// returns false when the call was a no-op.
func (p *Panel) Submit(ctx context.Context, text string) bool {
	round, ok := p.Begin(text)
	if !ok {
		return false
	}

	reply, err := p.Exchange(ctx, round)
	p.Settle(round, reply, err)
	return true
}

// SubmitInput submits the current composition buffer
func (p *Panel) SubmitInput(ctx context.Context) bool {
	return p.Submit(ctx, p.Input())
}

func notify(fn Observer, latest int) {
	if fn != nil {
		fn(latest)
	}
}
