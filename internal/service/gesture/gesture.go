package gesture

import (
	"errors"
	"math"

	"github.com/humanbelnik/moviematch/internal/model"
)

var ErrReleased = errors.New("drag handle released")

const (
	DefaultThreshold      = 100.0
	DefaultRotationFactor = 0.1
	DefaultFadeDistance   = 300.0
	DefaultMinOpacity     = 0.7
	// Offset past which the like/pass indicator lights up.
	DefaultIndicatorOffset = 50.0
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseCommitted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseCommitted:
		return "committed"
	}
	return "unknown"
}

type Point = model.Point

// Offset is current minus origin of an active drag.
type Offset struct {
	DX float64
	DY float64
}

type Settings struct {
	Threshold       float64
	RotationFactor  float64
	FadeDistance    float64
	MinOpacity      float64
	IndicatorOffset float64
}

func DefaultSettings() Settings {
	return Settings{
		Threshold:       DefaultThreshold,
		RotationFactor:  DefaultRotationFactor,
		FadeDistance:    DefaultFadeDistance,
		MinOpacity:      DefaultMinOpacity,
		IndicatorOffset: DefaultIndicatorOffset,
	}
}

// Visual is what the presentation layer needs to render a card mid-drag.
type Visual struct {
	Offset    Offset
	Rotation  float64
	Opacity   float64
	Indicator model.Action // empty when neither label is lit
}

func (s Settings) Visual(o Offset) Visual {
	v := Visual{
		Offset:   o,
		Rotation: o.DX * s.RotationFactor,
		Opacity:  math.Max(s.MinOpacity, 1-math.Abs(o.DX)/s.FadeDistance),
	}
	switch {
	case o.DX > s.IndicatorOffset:
		v.Indicator = model.ActionLike
	case o.DX < -s.IndicatorOffset:
		v.Indicator = model.ActionDislike
	}
	return v
}

type Outcome int

const (
	OutcomeCancelled Outcome = iota
	OutcomeCommitted
)

type Release struct {
	Outcome Outcome
	// Set only when committed.
	Action model.Action
	Offset Offset
}

func (r Release) Committed() bool {
	return r.Outcome == OutcomeCommitted
}

// Tracker turns pointer events into a like/dislike decision. It is not safe
// for concurrent use; the owning session serializes calls.
type Tracker struct {
	settings Settings
	phase    Phase
	drag     *Drag
}

func New(settings Settings) *Tracker {
	return &Tracker{settings: settings}
}

func (t *Tracker) Phase() Phase {
	return t.phase
}

func (t *Tracker) Settings() Settings {
	return t.settings
}

// Active returns the bound drag handle, if any.
func (t *Tracker) Active() (*Drag, bool) {
	return t.drag, t.drag != nil
}

// PointerDown starts a gesture. Outside of idle it is a no-op, which also
// swallows a second touch while a drag is in progress.
func (t *Tracker) PointerDown(p Point) (*Drag, bool) {
	if t.phase != PhaseIdle {
		return nil, false
	}
	t.phase = PhaseDragging
	t.drag = &Drag{
		tracker: t,
		origin:  p,
		current: p,
	}
	return t.drag, true
}

// Rearm moves a committed tracker back to idle for the next card.
func (t *Tracker) Rearm() {
	if t.phase == PhaseCommitted {
		t.phase = PhaseIdle
	}
}

// Abort drops an in-progress drag without a decision.
func (t *Tracker) Abort() {
	if t.drag != nil {
		t.drag.release()
	}
	t.phase = PhaseIdle
}

// Drag is the move/up listener pair bound for the lifetime of one gesture.
// Every exit from dragging unbinds it.
type Drag struct {
	tracker *Tracker
	origin  Point
	current Point
}

func (d *Drag) bound() bool {
	return d.tracker != nil && d.tracker.drag == d
}

func (d *Drag) release() {
	if d.bound() {
		d.tracker.drag = nil
	}
	d.tracker = nil
}

func (d *Drag) Origin() Point {
	return d.origin
}

func (d *Drag) Offset() Offset {
	return Offset{
		DX: d.current.X - d.origin.X,
		DY: d.current.Y - d.origin.Y,
	}
}

// State is the drag state while the handle is bound.
func (d *Drag) State() model.DragState {
	return model.DragState{
		Active:  d.bound(),
		Origin:  d.origin,
		Current: d.current,
	}
}

func (d *Drag) Move(p Point) (Visual, error) {
	if !d.bound() {
		return Visual{}, ErrReleased
	}
	d.current = p
	return d.tracker.settings.Visual(d.Offset()), nil
}

func (d *Drag) Up() (Release, error) {
	if !d.bound() {
		return Release{}, ErrReleased
	}
	t := d.tracker
	offset := d.Offset()
	d.release()

	if math.Abs(offset.DX) > t.settings.Threshold {
		t.phase = PhaseCommitted
		action := model.ActionDislike
		if offset.DX > 0 {
			action = model.ActionLike
		}
		return Release{Outcome: OutcomeCommitted, Action: action, Offset: offset}, nil
	}

	// Snap back: the card returns to its origin.
	d.current = d.origin
	t.phase = PhaseIdle
	return Release{Outcome: OutcomeCancelled, Offset: offset}, nil
}
