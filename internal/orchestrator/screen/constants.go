// Package screen runs the detect-and-compensate frame loop
package screen

// Frame loop constants
const (
	// Width of the thumbnail hashed for scene-cut tracking
	SceneThumbWidth = 64

	// Span name of one frame loop iteration
	TickSpanName = "tick"
)
