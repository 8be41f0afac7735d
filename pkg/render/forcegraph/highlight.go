package forcegraph

import (
	"math"

	"github.com/matzehuels/forcefield/pkg/physics"
)

// minHoldTime is how long a highlight must be held before it may fade out.
// This prevents flashing when the pointer briefly skirts a hover zone.
const minHoldTime = 0.12

// Highlight smoothing speeds. At 60fps, fade-in reaches ~95% in roughly
// 150ms and fade-out in roughly 250ms.
const (
	fadeInSpeed  = 6.0
	fadeOutSpeed = 4.0
)

// pruneIntensity is the visibility floor below which an intensity snaps to
// zero.
const pruneIntensity = 0.005

// HighlightState animates hover emphasis with per-node intensity tracking.
//
// Instead of discrete "current" and "previous" highlight sets, every node
// carries its own intensity in [0, 1] that eases toward its target with
// exponential smoothing, so transitions slow down as they approach their
// target. Intensities live in dense slices indexed by physics.NodeID.
type HighlightState struct {
	// Hovered is the currently hovered node, or -1 when nothing is hovered.
	Hovered physics.NodeID

	inTarget      []bool    // target highlight set: hovered node plus neighbors
	nodeIntensity []float64 // smoothed per-node emphasis
	ringIntensity []float64 // smoothed hover ring strength, hovered node only
	holdTimer     []float64 // seconds left before fade-out may begin
	cachedMax     float64
}

// NewHighlightState creates highlight tracking for a graph of n nodes.
func NewHighlightState(n int) *HighlightState {
	return &HighlightState{
		Hovered:       -1,
		inTarget:      make([]bool, n),
		nodeIntensity: make([]float64, n),
		ringIntensity: make([]float64, n),
		holdTimer:     make([]float64, n),
	}
}

func (h *HighlightState) valid(id physics.NodeID) bool {
	return id >= 0 && int(id) < len(h.nodeIntensity)
}

// SetHover updates the hovered node and recomputes the target set from the
// edge list. Pass -1 to clear the hover. A repeated hover on the same node is
// a no-op.
func (h *HighlightState) SetHover(node physics.NodeID, edges [][2]physics.NodeID) {
	if node == h.Hovered {
		return
	}
	if !h.valid(node) {
		node = -1
	}

	h.Hovered = node
	for i := range h.inTarget {
		h.inTarget[i] = false
	}
	if node < 0 {
		return
	}

	h.inTarget[node] = true
	for _, e := range edges {
		if e[0] == node && h.valid(e[1]) {
			h.inTarget[e[1]] = true
		} else if e[1] == node && h.valid(e[0]) {
			h.inTarget[e[0]] = true
		}
	}

	// Restart the hold window for everything newly highlighted.
	for i, in := range h.inTarget {
		if in {
			h.holdTimer[i] = minHoldTime
		}
	}
}

// Tick eases every intensity toward its target.
//
// Exponential smoothing: value += (target - value) * (1 - e^(-speed*dt)).
// Fade-out waits for the node's hold timer to expire first, and intensities
// below the visibility floor snap to zero.
func (h *HighlightState) Tick(dt float64) {
	fadeIn := 1.0 - math.Exp(-fadeInSpeed*dt)
	fadeOutDecay := math.Exp(-fadeOutSpeed * dt)

	maxIntensity := 0.0
	for i := range h.nodeIntensity {
		id := physics.NodeID(i)
		if h.inTarget[i] {
			h.nodeIntensity[i] += (1.0 - h.nodeIntensity[i]) * fadeIn
		} else {
			h.holdTimer[i] -= dt
			if h.holdTimer[i] <= 0 {
				h.holdTimer[i] = 0
				h.nodeIntensity[i] *= fadeOutDecay
				if h.nodeIntensity[i] <= pruneIntensity {
					h.nodeIntensity[i] = 0
				}
			}
		}

		if h.Hovered == id {
			h.ringIntensity[i] += (1.0 - h.ringIntensity[i]) * fadeIn
		} else if h.holdTimer[i] <= 0 {
			h.ringIntensity[i] *= fadeOutDecay
			if h.ringIntensity[i] <= pruneIntensity {
				h.ringIntensity[i] = 0
			}
		}

		if h.nodeIntensity[i] > maxIntensity {
			maxIntensity = h.nodeIntensity[i]
		}
	}
	h.cachedMax = maxIntensity
}

// NodeIntensity returns the smoothed emphasis for a node.
func (h *HighlightState) NodeIntensity(id physics.NodeID) float64 {
	if !h.valid(id) {
		return 0
	}
	return h.nodeIntensity[id]
}

// RingIntensity returns the smoothed hover ring strength for a node.
func (h *HighlightState) RingIntensity(id physics.NodeID) float64 {
	if !h.valid(id) {
		return 0
	}
	return h.ringIntensity[id]
}

// EdgeIntensity returns the emphasis for an edge as the geometric mean of
// its endpoint intensities, which tracks node transitions without lagging.
func (h *HighlightState) EdgeIntensity(a, b physics.NodeID) float64 {
	return math.Sqrt(h.NodeIntensity(a) * h.NodeIntensity(b))
}

// MaxIntensity returns the largest node intensity from the last Tick. It
// drives the dimming of non-highlighted elements.
func (h *HighlightState) MaxIntensity() float64 {
	return h.cachedMax
}
