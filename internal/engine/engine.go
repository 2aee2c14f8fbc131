// Package engine implements the smooth scroll animation core: two axis
// runners that absorb wheel notches, blend them into running animations
// with acceleration stacking, and emit re-synthesized wheel events on a
// fixed timer cadence.
package engine

import (
	"log"
	"math"
	"sync"
	"time"

	"swiftscroll/internal/config"
)

// Axis identifies a scroll direction
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// TickInterval is the engine cadence. It is constant once the engine
// starts; every animation is sampled on this grid.
const TickInterval = 10 * time.Millisecond

// Target is the destination captured when a notch arrives
type Target struct {
	Window uintptr
	X, Y   int32
}

// Notch is one wheel detent accepted by the interception layer. Delta
// keeps the raw wheel sign; Time is a monotonic arrival timestamp.
type Notch struct {
	Delta  int
	Axis   Axis
	Time   time.Time
	Target Target
}

// Emitter delivers synthetic wheel events. Pixels are signed; the
// implementation scales them into wheel units.
type Emitter interface {
	EmitWheel(t Target, axis Axis, pixels int) error
}

// animation is one notch's in-flight pixel debt. Parameters are captured
// at absorb time and never retro-warp when settings change mid-flight.
type animation struct {
	total    float64 // absolute pixel budget
	emitted  float64 // absolute pixels accounted so far
	sign     int
	start    time.Time
	lifetime time.Duration
	headFrac float64
	eased    bool
}

func (a *animation) remaining() float64 {
	return a.total - a.emitted
}

// axisRunner holds the live per-axis state. It is touched only by the
// tick goroutine.
type axisRunner struct {
	axis      Axis
	anims     []*animation
	residual  float64
	lastNotch time.Time
	accel     int
	target    Target
}

func newAxisRunner(axis Axis) *axisRunner {
	return &axisRunner{axis: axis, accel: 1}
}

// absorb merges a notch into the runner under the given parameters.
// Acceleration stacks when the inter-notch gap is within the window and
// resets to 1 otherwise; only the pixel budget scales, never the
// lifetime.
func (r *axisRunner) absorb(n Notch, p config.ScrollParams, em Emitter) {
	if !r.lastNotch.IsZero() && n.Time.Sub(r.lastNotch) <= time.Duration(p.AccelerationDeltaMs)*time.Millisecond {
		if r.accel < p.AccelerationMax {
			r.accel++
		}
	} else {
		r.accel = 1
	}
	r.lastNotch = n.Time
	r.target = n.Target

	sign := 1
	if n.Delta < 0 {
		sign = -1
	}
	budget := p.StepSizePx * r.accel

	if r.axis == AxisHorizontal && !p.HorizontalSmoothness {
		// Unanimated axis: one burst carrying the whole budget
		if err := em.EmitWheel(r.target, r.axis, budget*sign); err != nil {
			log.Printf("Engine: %s burst failed, deferring %d px: %v", r.axis, budget, err)
			r.residual += float64(budget * sign)
		}
		return
	}

	r.anims = append(r.anims, &animation{
		total:    float64(budget),
		sign:     sign,
		start:    n.Time,
		lifetime: time.Duration(p.AnimationTimeMs) * time.Millisecond,
		headFrac: headFraction(p.TailToHeadRatio),
		eased:    p.AnimationEasing,
	})
}

// step advances every animation to now, batches the co-signed
// contributions plus the carried residual into one integer emission, and
// prunes animations whose budget is spent. A failed emission returns the
// pixels to the residual so they stay owed.
func (r *axisRunner) step(now time.Time, em Emitter) {
	if len(r.anims) == 0 && r.residual > -1 && r.residual < 1 {
		return
	}

	due := r.residual
	for _, a := range r.anims {
		u := float64(now.Sub(a.start)) / float64(a.lifetime)
		cum := a.total * progress(u, a.headFrac, a.eased)
		d := cum - a.emitted
		a.emitted = cum
		due += d * float64(a.sign)
	}

	px := int(math.Round(due))
	r.residual = due - float64(px)

	if px != 0 {
		if err := em.EmitWheel(r.target, r.axis, px); err != nil {
			log.Printf("Engine: %s emission failed, deferring %d px: %v", r.axis, px, err)
			r.residual += float64(px)
		}
	}

	keep := r.anims[:0]
	for _, a := range r.anims {
		if a.remaining() > 1e-9 {
			keep = append(keep, a)
		}
	}
	for i := len(keep); i < len(r.anims); i++ {
		r.anims[i] = nil
	}
	r.anims = keep
}

func (r *axisRunner) reset() {
	r.anims = nil
	r.residual = 0
	r.lastNotch = time.Time{}
	r.accel = 1
	r.target = Target{}
}

// Engine drives both axis runners off a single ticker
type Engine struct {
	emitter Emitter

	mu      sync.Mutex
	params  config.ScrollParams
	running bool
	quit    chan struct{}
	done    chan struct{}

	queues  [2]chan Notch
	runners [2]*axisRunner
}

// New creates an engine emitting through em with the given parameters
func New(em Emitter, params config.ScrollParams) *Engine {
	e := &Engine{
		emitter: em,
		params:  params,
	}
	for axis := range e.queues {
		e.queues[axis] = make(chan Notch, 64)
		e.runners[axis] = newAxisRunner(Axis(axis))
	}
	return e
}

// ApplySettings atomically replaces the live parameter tuple. In-flight
// animations keep the parameters they were absorbed with.
func (e *Engine) ApplySettings(params config.ScrollParams) {
	e.mu.Lock()
	e.params = params
	e.mu.Unlock()
}

// Absorb publishes a notch to its axis queue. Called from the hook
// thread; never blocks.
func (e *Engine) Absorb(n Notch) {
	select {
	case e.queues[n.Axis] <- n:
	default:
		// Queue full, drop the notch
	}
}

// Start launches the tick loop. Idempotent.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return nil
	}
	e.running = true
	e.quit = make(chan struct{})
	e.done = make(chan struct{})

	go func(quit, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(TickInterval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				e.tick(now)
			case <-quit:
				return
			}
		}
	}(e.quit, e.done)

	log.Printf("Engine: started, tick interval %v", TickInterval)
	return nil
}

// Stop halts the tick loop and discards in-flight animations without
// emitting their remainder. Idempotent.
func (e *Engine) Stop() error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return nil
	}
	e.running = false
	quit, done := e.quit, e.done
	e.mu.Unlock()

	close(quit)
	<-done

	for axis := range e.queues {
	flush:
		for {
			select {
			case <-e.queues[axis]:
			default:
				break flush
			}
		}
	}
	for _, r := range e.runners {
		r.reset()
	}
	log.Printf("Engine: stopped")
	return nil
}

// tick drains the notch queues and advances both runners. The tick
// goroutine is the sole owner of runner state.
func (e *Engine) tick(now time.Time) {
	e.mu.Lock()
	params := e.params
	e.mu.Unlock()

	for axis := range e.queues {
	drain:
		for {
			select {
			case n := <-e.queues[axis]:
				e.runners[axis].absorb(n, params, e.emitter)
			default:
				break drain
			}
		}
	}

	for _, r := range e.runners {
		r.step(now, e.emitter)
	}
}
