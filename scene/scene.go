// Package scene wires the animation sequencer into the game's four scenes
// and switches between them.
package scene

import (
	"errors"

	"github.com/milk9111/poseparty/sequence"
)

const (
	Title       = "title"
	HowTo       = "howto"
	Roulette    = "roulette"
	Camera      = "camera"
	Score       = "score"
	RoundResult = "round_result"
)

const (
	// EventThemeLanded carries the theme picked when the reel stops.
	EventThemeLanded sequence.EventKind = "theme_landed"
	// EventThemePublished fires once the explosion has covered the screen.
	EventThemePublished sequence.EventKind = "theme_published"
	// EventCaptureFired fires when the countdown reaches zero.
	EventCaptureFired sequence.EventKind = "capture_fired"
	// EventScoresRefreshed fires when new meter targets were applied.
	EventScoresRefreshed sequence.EventKind = "scores_refreshed"
)

var (
	ErrNoThemes      = errors.New("scene: no themes")
	ErrScoreShape    = errors.New("scene: scores need three segments per player")
	ErrUnknownScene  = errors.New("scene: unknown scene")
	ErrNoSegments    = errors.New("scene: no meter segments")
	ErrBadTitle      = errors.New("scene: empty title")
	ErrBadItemHeight = errors.New("scene: item height must be positive")
	ErrNoLines       = errors.New("scene: no dialogue lines")
)

// Scene is one running sequencer plus whatever it does around each tick.
type Scene interface {
	Update(dt float64)
	Sequencer() *sequence.Sequencer
}

// Pressable scenes handle the advance key themselves.
type Pressable interface {
	Press()
}

// Shared is the blackboard the host passes from scene to scene.
type Shared struct {
	Theme string
	Round int
}

// gateFor joins a scene's own gate with an extra configured one.
func gateFor(extra map[string]sequence.Gate, phase string, own sequence.Gate) sequence.Gate {
	return sequence.All(own, extra[phase])
}
