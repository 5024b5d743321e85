package scene

import (
	"fmt"
	"log"

	"github.com/milk9111/poseparty/sequence"
)

// Factory builds a fresh scene. It runs every time the scene is entered.
type Factory func(shared *Shared) (Scene, error)

type ManagerOption func(*Manager)

// WithLinger keeps a finished scene on screen for seconds before switching.
func WithLinger(scene string, seconds float64) ManagerOption {
	return func(m *Manager) { m.linger[scene] = seconds }
}

// WithEventHook sees every sequencer event after it is logged.
func WithEventHook(fn func(sequence.Event)) ManagerOption {
	return func(m *Manager) { m.onEvent = fn }
}

// Manager owns the current scene and follows its next-scene signal.
type Manager struct {
	factories map[string]Factory
	shared    *Shared
	linger    map[string]float64
	onEvent   func(sequence.Event)

	name     string
	current  Scene
	finished float64
	skip     bool
	quit     bool
}

func NewManager(shared *Shared, factories map[string]Factory, opts ...ManagerOption) *Manager {
	if shared == nil {
		shared = &Shared{}
	}
	m := &Manager{
		factories: make(map[string]Factory, len(factories)),
		shared:    shared,
		linger:    make(map[string]float64),
	}
	for name, f := range factories {
		m.factories[name] = f
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start switches to the named scene, discarding any current one.
func (m *Manager) Start(name string) error {
	f, ok := m.factories[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
	sc, err := f(m.shared)
	if err != nil {
		return fmt.Errorf("scene: build %s: %w", name, err)
	}
	if m.name != "" {
		log.Printf("scene: %s -> %s", m.name, name)
	} else {
		log.Printf("scene: start %s", name)
	}
	m.name = name
	m.current = sc
	m.finished = 0
	m.skip = false
	return nil
}

// Update ticks the current scene and switches when it is done. A finished
// scene without a next scene ends the game.
func (m *Manager) Update(dt float64) error {
	if m.quit || m.current == nil {
		return nil
	}

	seq := m.current.Sequencer()
	if !m.skip {
		m.current.Update(dt)
	}
	for _, evt := range seq.Drain() {
		m.handle(evt)
	}

	if !m.skip {
		if !seq.Done() {
			return nil
		}
		m.finished += dt
		if m.finished < m.linger[m.name] {
			return nil
		}
	}

	next := seq.Next()
	if next == "" {
		log.Printf("scene: %s finished with no next scene", m.name)
		m.quit = true
		return nil
	}
	return m.Start(next)
}

func (m *Manager) handle(evt sequence.Event) {
	switch evt.Kind {
	case sequence.EventPhaseEntered, sequence.EventPhaseExited:
	case EventThemeLanded:
		log.Printf("scene: %s landed on %v", evt.Scene, evt.Data)
	case EventThemePublished:
		if theme, ok := evt.Data.(string); ok {
			m.shared.Theme = theme
		}
	case sequence.EventFinished:
		log.Printf("scene: %s finished at %.2fs", evt.Scene, evt.At)
	default:
		log.Printf("scene: %s %s %v", evt.Scene, evt.Kind, evt.Data)
	}
	if m.onEvent != nil {
		m.onEvent(evt)
	}
}

// Skip jumps to the current scene's next scene on the following Update.
func (m *Manager) Skip() {
	if m.current != nil {
		m.skip = true
	}
}

// Press hands the advance key to the current scene, or skips scenes that
// do not take it.
func (m *Manager) Press() {
	if p, ok := m.current.(Pressable); ok {
		p.Press()
		return
	}
	m.Skip()
}

func (m *Manager) RequestQuit() { m.quit = true }

func (m *Manager) Quit() bool { return m.quit }

func (m *Manager) Current() Scene { return m.current }

func (m *Manager) CurrentName() string { return m.name }

func (m *Manager) Shared() *Shared { return m.shared }
