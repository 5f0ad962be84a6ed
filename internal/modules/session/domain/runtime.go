package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	plan "apnea/internal/modules/plan/domain"
	"apnea/internal/platform/clock"
	apperrors "apnea/internal/platform/errors"
	applog "apnea/internal/platform/log"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// State is a read-only snapshot of the runtime.
type State struct {
	Status           Status
	PhaseIndex       int
	PhaseElapsed     int
	SessionElapsed   int
	TotalPhases      int
	StretchConfirmed bool
	MaxHoldCompleted bool
}

func (s State) Running() bool {
	return s.Status == StatusActive || s.Status == StatusPaused
}

// Summary is emitted once per session, on natural completion or End.
type Summary struct {
	ID              string
	Focus           string
	Custom          bool
	TotalTime       int
	TotalPhases     int
	CompletedPhases int
	MaxHoldUsed     int
	MaxHoldTimes    []int
	EndedEarly      bool
	StartedAt       time.Time
	EndedAt         time.Time
}

// BestHold returns the longest manually completed max hold.
func (s Summary) BestHold() int {
	if len(s.MaxHoldTimes) == 0 {
		return 0
	}
	return slices.Max(s.MaxHoldTimes)
}

type Option func(*Runtime)

// WithStrict makes operations in the wrong state return ErrInvalidOperation
// instead of being ignored.
func WithStrict(strict bool) Option {
	return func(r *Runtime) { r.strict = strict }
}

func WithClock(c clock.Clock) Option {
	return func(r *Runtime) { r.clock = c }
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Runtime) { r.logger = l }
}

// WithObserver registers a callback invoked after every state change.
func WithObserver(fn func(State)) Option {
	return func(r *Runtime) { r.observer = fn }
}

// WithCompletion registers a callback invoked with the summary when the
// session reaches Completed.
func WithCompletion(fn func(Summary)) Option {
	return func(r *Runtime) { r.onComplete = fn }
}

// Runtime drives a phase list in one-second ticks.
//
//	Idle -> Active <-> Paused
//	Active|Paused -> Completed (last phase done, or End)
//	any -> Idle (Reset)
//
// It is not safe for concurrent use; one driver owns it.
type Runtime struct {
	clock      clock.Clock
	logger     zerolog.Logger
	strict     bool
	observer   func(State)
	onComplete func(Summary)

	plan      plan.Plan
	state     State
	summary   *Summary
	maxHolds  []int
	startedAt time.Time
}

func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		clock:  clock.SystemClock{},
		logger: applog.WithComponent("runtime"),
		state:  State{Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start loads p and enters Active at phase 0. An empty plan fails with
// ErrNoPhasesConfigured in every mode.
func (r *Runtime) Start(p plan.Plan) error {
	if r.state.Running() {
		return r.invalid("start")
	}
	if p.Empty() {
		return fmt.Errorf("%w: %s", apperrors.ErrNoPhasesConfigured, p.SessionType)
	}
	p.Phases = slices.Clone(p.Phases)
	r.plan = p
	r.summary = nil
	r.maxHolds = nil
	r.startedAt = r.clock.Now()
	r.state = State{Status: StatusActive, TotalPhases: len(p.Phases)}
	r.logger.Info().Str("session_type", p.SessionType).Int("phases", len(p.Phases)).Msg("session started")
	r.notify()
	return nil
}

// Tick accounts for one elapsed second. Gated phases never advance here.
func (r *Runtime) Tick() error {
	if r.state.Status != StatusActive {
		return r.invalid("tick")
	}
	phase := r.plan.Phases[r.state.PhaseIndex]
	r.state.SessionElapsed++
	if !phase.IsStretchConfirmation() {
		r.state.PhaseElapsed++
	}
	if phase.Duration > 0 && r.state.PhaseElapsed >= phase.Duration {
		r.advance()
	}
	r.notify()
	return nil
}

func (r *Runtime) Pause() error {
	if r.state.Status != StatusActive {
		return r.invalid("pause")
	}
	r.state.Status = StatusPaused
	r.notify()
	return nil
}

func (r *Runtime) Resume() error {
	if r.state.Status != StatusPaused {
		return r.invalid("resume")
	}
	r.state.Status = StatusActive
	r.notify()
	return nil
}

// TogglePause pauses an active session or resumes a paused one.
func (r *Runtime) TogglePause() error {
	if r.state.Status == StatusPaused {
		return r.Resume()
	}
	return r.Pause()
}

// Skip moves to the next phase without waiting. The last phase cannot be
// skipped; End finishes the session instead.
func (r *Runtime) Skip() error {
	if r.state.Status != StatusActive || r.state.PhaseIndex >= len(r.plan.Phases)-1 {
		return r.invalid("skip")
	}
	r.advance()
	r.notify()
	return nil
}

func (r *Runtime) ConfirmStretch() error {
	phase, ok := r.Current()
	if r.state.Status != StatusActive || !ok || !phase.IsStretchConfirmation() {
		return r.invalid("confirm stretch")
	}
	r.state.StretchConfirmed = true
	r.advance()
	r.notify()
	return nil
}

// CompleteMaxHold closes an open-ended max hold and records how long it
// lasted.
func (r *Runtime) CompleteMaxHold() error {
	phase, ok := r.Current()
	if r.state.Status != StatusActive || !ok || !phase.IsMaxHold() {
		return r.invalid("complete max hold")
	}
	r.maxHolds = append(r.maxHolds, r.state.PhaseElapsed)
	r.state.MaxHoldCompleted = true
	r.logger.Info().Int("seconds", r.state.PhaseElapsed).Msg("max hold completed")
	r.advance()
	r.notify()
	return nil
}

// End terminates a running session early and emits its summary.
func (r *Runtime) End() error {
	if !r.state.Running() {
		return r.invalid("end")
	}
	r.complete(true)
	r.notify()
	return nil
}

// Reset discards everything and returns to Idle. It always succeeds.
func (r *Runtime) Reset() {
	r.plan = plan.Plan{}
	r.summary = nil
	r.maxHolds = nil
	r.state = State{Status: StatusIdle}
	r.notify()
}

func (r *Runtime) State() State {
	return r.state
}

func (r *Runtime) Plan() plan.Plan {
	return r.plan
}

// Current returns the phase under the cursor while a session is loaded.
func (r *Runtime) Current() (plan.Phase, bool) {
	if r.state.Status == StatusIdle || r.state.PhaseIndex >= len(r.plan.Phases) {
		return plan.Phase{}, false
	}
	return r.plan.Phases[r.state.PhaseIndex], true
}

// Remaining is the countdown for the current timed phase, 0 for gated ones.
func (r *Runtime) Remaining() int {
	phase, ok := r.Current()
	if !ok || phase.Duration == 0 {
		return 0
	}
	return max(phase.Duration-r.state.PhaseElapsed, 0)
}

// Summary returns the summary once the session has completed.
func (r *Runtime) Summary() (Summary, bool) {
	if r.summary == nil {
		return Summary{}, false
	}
	s := *r.summary
	s.MaxHoldTimes = slices.Clone(s.MaxHoldTimes)
	return s, true
}

func (r *Runtime) advance() {
	if r.state.PhaseIndex >= len(r.plan.Phases)-1 {
		r.complete(false)
		return
	}
	r.state.PhaseIndex++
	r.state.PhaseElapsed = 0
}

func (r *Runtime) complete(early bool) {
	r.state.Status = StatusCompleted
	summary := Summary{
		Focus:           r.plan.SessionType,
		Custom:          r.plan.Custom,
		TotalTime:       r.state.SessionElapsed,
		TotalPhases:     len(r.plan.Phases),
		CompletedPhases: r.state.PhaseIndex + 1,
		MaxHoldUsed:     r.plan.MaxHold,
		MaxHoldTimes:    slices.Clone(r.maxHolds),
		EndedEarly:      early,
		StartedAt:       r.startedAt,
		EndedAt:         r.clock.Now(),
	}
	r.summary = &summary
	r.logger.Info().
		Str("session_type", summary.Focus).
		Int("total_time", summary.TotalTime).
		Int("completed_phases", summary.CompletedPhases).
		Bool("ended_early", early).
		Msg("session completed")
	if r.onComplete != nil {
		r.onComplete(summary)
	}
}

func (r *Runtime) invalid(op string) error {
	r.logger.Debug().
		Str("op", op).
		Str("status", string(r.state.Status)).
		Int("phase_index", r.state.PhaseIndex).
		Msg("ignored operation")
	if r.strict {
		return fmt.Errorf("%w: %s while %s", apperrors.ErrInvalidOperation, op, r.state.Status)
	}
	return nil
}

func (r *Runtime) notify() {
	if r.observer != nil {
		r.observer(r.state)
	}
}
