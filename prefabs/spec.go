package prefabs

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	cacheMu sync.Mutex
	cache   = map[string]any{}
)

// LoadSpec decodes a yaml prefab, caching the result until Invalidate.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	key := cleanPrefabPath(filename)

	cacheMu.Lock()
	if v, ok := cache[key].(T); ok {
		cacheMu.Unlock()
		return v, nil
	}
	cacheMu.Unlock()

	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[key] = spec
	cacheMu.Unlock()
	return spec, nil
}

// Invalidate drops a cached spec. An empty name drops everything.
func Invalidate(name string) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if name == "" {
		clear(cache)
		return
	}
	delete(cache, filepath.Base(name))
}

// GateSpec attaches a tengo script as an extra gate on one phase.
type GateSpec struct {
	Phase  string         `yaml:"phase"`
	Script string         `yaml:"script"`
	Args   map[string]any `yaml:"args"`
}

type GameSpec struct {
	Start      string             `yaml:"start"`
	Background YAMLColor          `yaml:"background"`
	Linger     map[string]float64 `yaml:"linger"`
	Scores     string             `yaml:"scores"`
	HistoryDir string             `yaml:"history_dir"`
}

func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec]("game.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ResultSpec struct {
	Next          string     `yaml:"next"`
	FadeStep      float64    `yaml:"fade_step"`
	GrowthRate    float64    `yaml:"growth_rate"`
	CountInterval float64    `yaml:"count_interval"`
	MaxScore      float64    `yaml:"max_score"`
	ChartRadius   float64    `yaml:"chart_radius"`
	Red           YAMLColor  `yaml:"red"`
	Blue          YAMLColor  `yaml:"blue"`
	Gates         []GateSpec `yaml:"gates"`
}

func LoadResultSpec() (*ResultSpec, error) {
	spec, err := LoadSpec[ResultSpec]("result.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type RouletteSpec struct {
	Next        string     `yaml:"next"`
	Themes      []string   `yaml:"themes"`
	ItemHeight  float64    `yaml:"item_height"`
	Speed       float64    `yaml:"speed"`
	SpinMin     float64    `yaml:"spin_min"`
	SpinMax     float64    `yaml:"spin_max"`
	FrictionMin float64    `yaml:"friction_min"`
	FrictionMax float64    `yaml:"friction_max"`
	LowSpeed    float64    `yaml:"low_speed"`
	SnapEasing  float64    `yaml:"snap_easing"`
	Tolerance   float64    `yaml:"tolerance"`
	Fuse        float64    `yaml:"fuse"`
	ExplodeStep float64    `yaml:"explode_step"`
	Repeat      bool       `yaml:"repeat"`
	Seed        uint64     `yaml:"seed"`
	Gates       []GateSpec `yaml:"gates"`
}

func LoadRouletteSpec() (*RouletteSpec, error) {
	spec, err := LoadSpec[RouletteSpec]("roulette.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CaptureSpec struct {
	Next        string     `yaml:"next"`
	Wait        float64    `yaml:"wait"`
	LidDuration float64    `yaml:"lid_duration"`
	CountFrom   int        `yaml:"count_from"`
	TimeSpeed   float64    `yaml:"time_speed"`
	Gates       []GateSpec `yaml:"gates"`
}

func LoadCaptureSpec() (*CaptureSpec, error) {
	spec, err := LoadSpec[CaptureSpec]("capture.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type MeterSpec struct {
	Next              string     `yaml:"next"`
	Title             string     `yaml:"title"`
	TitleStartY       float64    `yaml:"title_start_y"`
	TitleTargetY      float64    `yaml:"title_target_y"`
	TitleEasing       float64    `yaml:"title_easing"`
	CharDelay         float64    `yaml:"char_delay"`
	CharDelayStep     float64    `yaml:"char_delay_step"`
	Limits            []float64  `yaml:"limits"`
	Rate              float64    `yaml:"rate"`
	ReadInterval      float64    `yaml:"read_interval"`
	DotInterval       float64    `yaml:"dot_interval"`
	DotCount          int        `yaml:"dot_count"`
	CountdownFrom     int        `yaml:"countdown_from"`
	CountdownInterval float64    `yaml:"countdown_interval"`
	Gates             []GateSpec `yaml:"gates"`
}

func LoadMeterSpec() (*MeterSpec, error) {
	spec, err := LoadSpec[MeterSpec]("meter.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type TitleSpec struct {
	Next          string     `yaml:"next"`
	Logo          string     `yaml:"logo"`
	Prompt        string     `yaml:"prompt"`
	LogoDelay     float64    `yaml:"logo_delay"`
	CharsDelay    float64    `yaml:"chars_delay"`
	PromptDelay   float64    `yaml:"prompt_delay"`
	Fade          float64    `yaml:"fade"`
	Blink         float64    `yaml:"blink"`
	AttackCycle   float64    `yaml:"attack_cycle"`
	AttackPeak    float64    `yaml:"attack_peak"`
	DashAmplitude float64    `yaml:"dash_amplitude"`
	HitWindow     float64    `yaml:"hit_window"`
	ShakeDuration float64    `yaml:"shake_duration"`
	Gates         []GateSpec `yaml:"gates"`
}

func LoadTitleSpec() (*TitleSpec, error) {
	spec, err := LoadSpec[TitleSpec]("title.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type LineSpec struct {
	Speaker int    `yaml:"speaker"`
	Text    string `yaml:"text"`
}

type HowToSpec struct {
	Next        string     `yaml:"next"`
	Lines       []LineSpec `yaml:"lines"`
	JumpHeight  float64    `yaml:"jump_height"`
	JumpRecover float64    `yaml:"jump_recover"`
	Themes      []string   `yaml:"themes"`
	ItemHeight  float64    `yaml:"item_height"`
	Speed       float64    `yaml:"speed"`
	SpinFor     float64    `yaml:"spin_for"`
	Friction    float64    `yaml:"friction"`
	LowSpeed    float64    `yaml:"low_speed"`
	SnapEasing  float64    `yaml:"snap_easing"`
	Tolerance   float64    `yaml:"tolerance"`
	Rest        float64    `yaml:"rest"`
	Countdown   float64    `yaml:"countdown"`
	Shutter     float64    `yaml:"shutter"`
	Pause       float64    `yaml:"pause"`
	Gates       []GateSpec `yaml:"gates"`
}

func LoadHowToSpec() (*HowToSpec, error) {
	spec, err := LoadSpec[HowToSpec]("howto.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// Or returns c, or fallback when the color was never set.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
