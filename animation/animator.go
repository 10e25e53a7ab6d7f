// Package animation implements a fixed-timestep interpolation pipeline: a
// ticker steps queued animations and publishes per-frame transform records
// that a consumer (the command/wm layer) applies on its own schedule.
// Animations are addressed by a process-unique Handle, never by pointer, so
// a container can be destroyed mid-animation without the animator ever
// dereferencing stale state. Interpolation is driven by
// github.com/tanema/gween, generalized from a single float channel per key
// to full rect/transform interpolation per handle.
package animation

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tanema/gween"
	"golang.org/x/sync/errgroup"
)

// Handle addresses one queued animation across its lifetime.
type Handle int64

// NoHandle is never assigned to a real container.
const NoHandle Handle = 0

// Kind distinguishes the four animation behaviors an Animator can drive.
type Kind int

const (
	KindSlide Kind = iota
	KindGrow
	KindShrink
	KindDisabled
)

// Rect is a floating-point rectangle used for interpolation; callers convert
// to/from their own integer geometry at the boundary.
type Rect struct {
	X, Y, W, H float64
}

// Transform is a 4x4 matrix in row-major order, matching the GLSL convention
// the excluded OpenGL renderer consumes.
type Transform [16]float64

// Identity returns the 4x4 identity matrix.
func Identity() Transform {
	return Transform{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// scaleAbout returns a matrix that scales by sx,sy about (cx,cy).
func scaleAbout(sx, sy, cx, cy float64) Transform {
	return Transform{
		sx, 0, 0, cx * (1 - sx),
		0, sy, 0, cy * (1 - sy),
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// StepResult is emitted once per animation per tick. Position/Size/Transform
// are nil when the animation kind does not produce that channel.
type StepResult struct {
	Handle     Handle
	IsComplete bool
	ClipArea   Rect
	Position   *Rect // X,Y populated; W,H unused
	Size       *Rect // W,H populated; X,Y unused
	Transform  *Transform
}

// animation is the internal, mutable state of one queued animation.
type animation struct {
	handle   Handle
	kind     Kind
	from, to Rect

	// committedSize is the client's actual current size, used by slide to
	// compute the scale-to-commit transform.
	committedSize Rect

	posX, posY   *gween.Tween
	clipW, clipH *gween.Tween
	scale        *gween.Tween

	clipArea Rect
}

// Animator owns the animation queue and the fixed-timestep ticker.
type Animator struct {
	mu         sync.Mutex
	animations map[Handle]*animation
	order      []Handle // FIFO append order; stepped in this order each tick

	nextHandle int64

	timestep time.Duration
	lag      time.Duration
	lastTick time.Time

	wake   chan struct{}
	group  *errgroup.Group
	cancel context.CancelFunc

	onTick func([]StepResult)
}

// New creates an Animator with a fixed 16ms timestep.
func New() *Animator {
	return &Animator{
		animations: make(map[Handle]*animation),
		timestep:   16 * time.Millisecond,
		wake:       make(chan struct{}, 1),
	}
}

// NextHandle assigns a new process-unique, monotonically increasing,
// non-zero handle. Called when a container is registered, independent of
// whether it is ever animated.
func (a *Animator) NextHandle() Handle {
	return Handle(atomic.AddInt64(&a.nextHandle, 1))
}

// OnTick registers the callback invoked once per real tick with the step
// results for every queued animation, in FIFO append order. The callback
// runs on the ticker goroutine; it must not block on external I/O, and it
// must apply results through the normal locked command-controller entry
// points rather than reaching into wm state directly.
func (a *Animator) OnTick(fn func([]StepResult)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onTick = fn
}

// Start launches the ticker goroutine under an errgroup so the loop's error
// path is observable via Wait instead of silently vanishing.
func (a *Animator) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	group, ctx := errgroup.WithContext(ctx)
	a.cancel = cancel
	a.group = group
	a.lastTick = time.Now()

	group.Go(func() error {
		a.run(ctx)
		return nil
	})
}

// Stop halts the ticker goroutine and waits for it to exit.
func (a *Animator) Stop() error {
	if a.cancel != nil {
		a.cancel()
	}
	if a.group != nil {
		return a.group.Wait()
	}
	return nil
}

func (a *Animator) run(ctx context.Context) {
	ticker := time.NewTicker(a.timestep)
	defer ticker.Stop()

	for {
		a.mu.Lock()
		idle := len(a.order) == 0
		a.mu.Unlock()

		if idle {
			select {
			case <-ctx.Done():
				return
			case <-a.wake:
				a.mu.Lock()
				a.lastTick = time.Now()
				a.lag = 0
				a.mu.Unlock()
				continue
			}
		}

		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			a.mu.Lock()
			elapsed := now.Sub(a.lastTick)
			a.lastTick = now
			a.lag += elapsed
			var results []StepResult
			for a.lag >= a.timestep && len(a.order) > 0 {
				results = append(results, a.stepLocked(a.timestep)...)
				a.lag -= a.timestep
			}
			cb := a.onTick
			a.mu.Unlock()
			if cb != nil && len(results) > 0 {
				cb(results)
			}
		}
	}
}

func (a *Animator) wakeUp() {
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

// AppendSlide queues a slide animation for handle: clip area interpolates
// from `from` to `to` over duration using the given easing, and the client's
// committedSize is scaled to match the clip size at every step. Any existing
// animation for handle is replaced first (invariant: at most one animation
// per handle). If an animation for the same handle is already mid-flight
// toward a different target, the new tween is seeded at the old one's
// current progress so the replacement doesn't cause a visible snap.
func (a *Animator) AppendSlide(h Handle, from, to, committedSize Rect, duration time.Duration, tween func(t, begin, change, d float32) float32) StepResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	seed := from
	if prev, ok := a.animations[h]; ok {
		seed = prev.clipArea
		a.removeLocked(h)
	}

	durf := float32(duration.Seconds())
	startX := float32(seed.X)
	startY := float32(seed.Y)
	startW := float32(seed.W)
	startH := float32(seed.H)

	anim := &animation{
		handle:        h,
		kind:          KindSlide,
		from:          from,
		to:            to,
		committedSize: committedSize,
		clipArea:      seed,
	}
	anim.posX = gween.New(startX, float32(to.X), durf, tween)
	anim.posY = gween.New(startY, float32(to.Y), durf, tween)
	anim.clipW = gween.New(startW, float32(to.W), durf, tween)
	anim.clipH = gween.New(startH, float32(to.H), durf, tween)

	a.animations[h] = anim
	a.order = append(a.order, h)
	a.wakeUp()

	return a.advance(anim, 0)
}

// AppendScale queues a grow or shrink animation for handle: a uniform scale
// factor interpolates from `from` to `to` (e.g. 0→1 for grow, 1→0 for
// shrink) about the center of area, over duration using the given easing.
// Any existing animation for handle is replaced first.
func (a *Animator) AppendScale(h Handle, kind Kind, area Rect, from, to float32, duration time.Duration, tween func(t, begin, change, d float32) float32) StepResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.animations[h]; ok {
		a.removeLocked(h)
	}

	anim := &animation{
		handle:   h,
		kind:     kind,
		to:       area,
		clipArea: area,
	}
	anim.scale = gween.New(from, to, float32(duration.Seconds()), tween)

	a.animations[h] = anim
	a.order = append(a.order, h)
	a.wakeUp()

	return a.advance(anim, 0)
}

// AppendDisabled immediately places handle at `to` with no interpolation,
// used when animations are globally disabled or a kind's AnimationDefinition
// has Enabled=false. No tick is consumed: the caller gets the final frame
// synchronously and nothing is queued.
func (a *Animator) AppendDisabled(h Handle, to Rect) StepResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.animations[h]; ok {
		a.removeLocked(h)
	}
	anim := &animation{handle: h, kind: KindDisabled, to: to, clipArea: to}
	return a.advance(anim, 0)
}

// Cancel removes a queued animation by handle. No completion callback fires.
func (a *Animator) Cancel(h Handle) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.removeLocked(h)
}

func (a *Animator) removeLocked(h Handle) {
	if _, ok := a.animations[h]; !ok {
		return
	}
	delete(a.animations, h)
	for i, oh := range a.order {
		if oh == h {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// HasAnimation reports whether handle currently has a queued animation.
func (a *Animator) HasAnimation(h Handle) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.animations[h]
	return ok
}

// stepLocked advances every queued animation by dt and returns their step
// results in FIFO append order, removing any that completed this step.
func (a *Animator) stepLocked(dt time.Duration) []StepResult {
	results := make([]StepResult, 0, len(a.order))
	dtf := float32(dt.Seconds())
	for _, h := range a.order {
		anim := a.animations[h]
		if anim == nil {
			continue
		}
		results = append(results, a.advance(anim, dtf))
	}
	for _, r := range results {
		if r.IsComplete {
			a.removeLocked(r.Handle)
		}
	}
	return results
}

// advance steps a single animation by dt (dt=0 for the synchronous initial
// frame returned from Append*) and reports its current state. Must be called
// with a.mu held.
func (a *Animator) advance(anim *animation, dt float32) StepResult {
	res := StepResult{Handle: anim.handle}

	switch anim.kind {
	case KindDisabled:
		res.IsComplete = true
		res.ClipArea = anim.to
		res.Position = &Rect{X: anim.to.X, Y: anim.to.Y}
		res.Size = &Rect{W: anim.to.W, H: anim.to.H}
		id := Identity()
		res.Transform = &id
		return res

	case KindSlide:
		x, doneX := anim.posX.Update(dt)
		y, doneY := anim.posY.Update(dt)
		w, doneW := anim.clipW.Update(dt)
		h, doneH := anim.clipH.Update(dt)
		anim.clipArea = Rect{X: float64(x), Y: float64(y), W: float64(w), H: float64(h)}

		res.IsComplete = doneX && doneY && doneW && doneH
		res.ClipArea = anim.clipArea
		res.Position = &Rect{X: float64(x), Y: float64(y)}
		res.Size = &Rect{W: float64(w), H: float64(h)}

		var sx, sy float64 = 1, 1
		if anim.committedSize.W != 0 {
			sx = anim.clipArea.W / anim.committedSize.W
		}
		if anim.committedSize.H != 0 {
			sy = anim.clipArea.H / anim.committedSize.H
		}
		t := scaleAbout(sx, sy, 0, 0)
		res.Transform = &t
		return res

	case KindGrow, KindShrink:
		s, done := anim.scale.Update(dt)
		res.IsComplete = done
		res.ClipArea = anim.to
		cx := anim.to.W / 2
		cy := anim.to.H / 2
		t := scaleAbout(float64(s), float64(s), cx, cy)
		res.Transform = &t
		return res

	default:
		log.Printf("animation: unknown kind %v for handle %d, completing immediately", anim.kind, anim.handle)
		res.IsComplete = true
		res.ClipArea = anim.to
		return res
	}
}
