// Package input keeps polled key and pointer state for behavior hooks.
//
// Terminals report key presses but not releases, so a key counts as down for
// a hold window after its last press.
package input

import (
	"sync"
	"time"
)

type Key uint8

const (
	KeyLeft Key = iota
	KeyUp
	KeyRight
	KeyDown
	keyCount
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyUp:
		return "up"
	case KeyRight:
		return "right"
	case KeyDown:
		return "down"
	default:
		return "unknown"
	}
}

// DefaultHold covers the gap between terminal key repeats.
const DefaultHold = 150 * time.Millisecond

// Point is a pointer position in world units.
type Point struct {
	X, Y float64
}

// Source is what behavior hooks read.
type Source interface {
	IsDown(k Key) bool
	Touch() (Point, bool)
}

type Keys struct {
	mu      sync.RWMutex
	now     func() time.Time
	hold    time.Duration
	pressed [keyCount]time.Time
	down    [keyCount]bool

	touch    Point
	touching bool
}

var _ Source = (*Keys)(nil)

// NewKeys returns key state read against now. A nil now uses time.Now and a
// non-positive hold uses DefaultHold.
func NewKeys(now func() time.Time, hold time.Duration) *Keys {
	if now == nil {
		now = time.Now
	}
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Keys{now: now, hold: hold}
}

// Press records a key press at the current time.
func (k *Keys) Press(key Key) {
	if key >= keyCount {
		return
	}
	k.mu.Lock()
	k.pressed[key] = k.now()
	k.down[key] = true
	k.mu.Unlock()
}

// Release clears a key before its hold window ends.
func (k *Keys) Release(key Key) {
	if key >= keyCount {
		return
	}
	k.mu.Lock()
	k.down[key] = false
	k.mu.Unlock()
}

func (k *Keys) IsDown(key Key) bool {
	if key >= keyCount {
		return false
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.down[key] && k.now().Sub(k.pressed[key]) <= k.hold
}

// Reset releases every key and the pointer.
func (k *Keys) Reset() {
	k.mu.Lock()
	k.down = [keyCount]bool{}
	k.touching = false
	k.mu.Unlock()
}

// SetTouch places the pointer. It stays until ClearTouch.
func (k *Keys) SetTouch(p Point) {
	k.mu.Lock()
	k.touch, k.touching = p, true
	k.mu.Unlock()
}

func (k *Keys) ClearTouch() {
	k.mu.Lock()
	k.touching = false
	k.mu.Unlock()
}

func (k *Keys) Touch() (Point, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.touch, k.touching
}
