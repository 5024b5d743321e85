package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

type shot struct {
	img   *image.RGBA
	theme string
	at    time.Time
}

// Shutter stands in for the camera: a trigger grabs the next rendered frame
// and a background goroutine writes it out as a PNG.
type Shutter struct {
	dir     string
	ready   bool
	pending bool
	theme   string
	shots   chan shot
}

func NewShutter(dir string) *Shutter {
	s := &Shutter{dir: dir, shots: make(chan shot, 4)}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("shutter: %s unavailable, camera scene will wait: %v", dir, err)
		return s
	}
	s.ready = true
	return s
}

func (s *Shutter) Ready() bool { return s.ready }

func (s *Shutter) Trigger(theme string) {
	s.pending = true
	s.theme = theme
	log.Printf("shutter: triggered for %q", theme)
}

// Capture copies screen if a trigger is pending. Call it from Draw.
func (s *Shutter) Capture(screen *ebiten.Image) {
	if !s.pending {
		return
	}
	s.pending = false

	img := image.NewRGBA(screen.Bounds())
	screen.ReadPixels(img.Pix)
	select {
	case s.shots <- shot{img: img, theme: s.theme, at: time.Now()}:
	default:
		log.Printf("shutter: dropped frame, writer busy")
	}
}

func (s *Shutter) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case sh := <-s.shots:
			if err := s.save(sh); err != nil {
				log.Printf("shutter: %v", err)
			}
		}
	}
}

func (s *Shutter) save(sh shot) error {
	name := fmt.Sprintf("shutter_%s_%06d.png", sh.at.Format("20060102_150405"), sh.at.Nanosecond()/1000)
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, sh.img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	log.Printf("shutter: saved %s (%s)", path, sh.theme)
	return nil
}
