package factory

import (
	"github.com/milk9111/poseparty/prefabs"
	"github.com/milk9111/poseparty/scene"
)

// Zero-valued spec fields keep the scene defaults.

func RouletteConfig(spec *prefabs.RouletteSpec) (scene.RouletteConfig, error) {
	cfg := scene.DefaultRouletteConfig()
	setString(&cfg.Next, spec.Next)
	if len(spec.Themes) > 0 {
		cfg.Themes = spec.Themes
	}
	setFloat(&cfg.ItemHeight, spec.ItemHeight)
	setFloat(&cfg.Speed, spec.Speed)
	setFloat(&cfg.SpinMin, spec.SpinMin)
	setFloat(&cfg.SpinMax, spec.SpinMax)
	setFloat(&cfg.FrictionMin, spec.FrictionMin)
	setFloat(&cfg.FrictionMax, spec.FrictionMax)
	setFloat(&cfg.LowSpeed, spec.LowSpeed)
	setFloat(&cfg.SnapEasing, spec.SnapEasing)
	setFloat(&cfg.Tolerance, spec.Tolerance)
	setFloat(&cfg.Fuse, spec.Fuse)
	if spec.ExplodeStep > 0 {
		cfg.ExplodeStep = int(spec.ExplodeStep)
	}
	cfg.Repeat = spec.Repeat
	cfg.Seed = spec.Seed

	gates, err := Gates(spec.Gates)
	if err != nil {
		return cfg, err
	}
	cfg.Gates = gates
	return cfg, nil
}

func CaptureConfig(spec *prefabs.CaptureSpec) (scene.CaptureConfig, error) {
	cfg := scene.DefaultCaptureConfig()
	setString(&cfg.Next, spec.Next)
	setFloat(&cfg.Wait, spec.Wait)
	setFloat(&cfg.LidDuration, spec.LidDuration)
	if spec.CountFrom > 0 {
		cfg.CountFrom = spec.CountFrom
	}
	setFloat(&cfg.TimeSpeed, spec.TimeSpeed)

	gates, err := Gates(spec.Gates)
	if err != nil {
		return cfg, err
	}
	cfg.Gates = gates
	return cfg, nil
}

func MeterConfig(spec *prefabs.MeterSpec) (scene.MeterConfig, error) {
	cfg := scene.DefaultMeterConfig()
	setString(&cfg.Next, spec.Next)
	setString(&cfg.Title, spec.Title)
	setFloat(&cfg.TitleStartY, spec.TitleStartY)
	setFloat(&cfg.TitleTargetY, spec.TitleTargetY)
	setFloat(&cfg.TitleEasing, spec.TitleEasing)
	setFloat(&cfg.CharDelay, spec.CharDelay)
	setFloat(&cfg.CharDelayStep, spec.CharDelayStep)
	if len(spec.Limits) > 0 {
		cfg.Limits = spec.Limits
	}
	setFloat(&cfg.Rate, spec.Rate)
	setFloat(&cfg.ReadInterval, spec.ReadInterval)
	setFloat(&cfg.DotInterval, spec.DotInterval)
	if spec.DotCount > 0 {
		cfg.DotCount = spec.DotCount
	}
	if spec.CountdownFrom > 0 {
		cfg.CountdownFrom = spec.CountdownFrom
	}
	setFloat(&cfg.CountdownInterval, spec.CountdownInterval)

	gates, err := Gates(spec.Gates)
	if err != nil {
		return cfg, err
	}
	cfg.Gates = gates
	return cfg, nil
}

func ResultConfig(spec *prefabs.ResultSpec) (scene.ResultConfig, error) {
	cfg := scene.DefaultResultConfig()
	setString(&cfg.Next, spec.Next)
	if spec.FadeStep > 0 {
		cfg.FadeStep = int(spec.FadeStep)
	}
	setFloat(&cfg.GrowthRate, spec.GrowthRate)
	setFloat(&cfg.CountInterval, spec.CountInterval)
	setFloat(&cfg.MaxScore, spec.MaxScore)

	gates, err := Gates(spec.Gates)
	if err != nil {
		return cfg, err
	}
	cfg.Gates = gates
	return cfg, nil
}

func TitleConfig(spec *prefabs.TitleSpec) (scene.TitleConfig, error) {
	cfg := scene.DefaultTitleConfig()
	setString(&cfg.Next, spec.Next)
	setString(&cfg.Logo, spec.Logo)
	setString(&cfg.Prompt, spec.Prompt)
	setFloat(&cfg.LogoDelay, spec.LogoDelay)
	setFloat(&cfg.CharsDelay, spec.CharsDelay)
	setFloat(&cfg.PromptDelay, spec.PromptDelay)
	setFloat(&cfg.Fade, spec.Fade)
	setFloat(&cfg.Blink, spec.Blink)
	setFloat(&cfg.AttackCycle, spec.AttackCycle)
	setFloat(&cfg.AttackPeak, spec.AttackPeak)
	setFloat(&cfg.DashAmplitude, spec.DashAmplitude)
	setFloat(&cfg.HitWindow, spec.HitWindow)
	setFloat(&cfg.ShakeDuration, spec.ShakeDuration)

	gates, err := Gates(spec.Gates)
	if err != nil {
		return cfg, err
	}
	cfg.Gates = gates
	return cfg, nil
}

func HowToConfig(spec *prefabs.HowToSpec) (scene.HowToConfig, error) {
	cfg := scene.DefaultHowToConfig()
	setString(&cfg.Next, spec.Next)
	if len(spec.Lines) > 0 {
		cfg.Lines = make([]scene.Line, 0, len(spec.Lines))
		for _, l := range spec.Lines {
			cfg.Lines = append(cfg.Lines, scene.Line{Speaker: l.Speaker, Text: l.Text})
		}
	}
	setFloat(&cfg.JumpHeight, spec.JumpHeight)
	setFloat(&cfg.JumpRecover, spec.JumpRecover)
	if len(spec.Themes) > 0 {
		cfg.Themes = spec.Themes
	}
	setFloat(&cfg.ItemHeight, spec.ItemHeight)
	setFloat(&cfg.Speed, spec.Speed)
	setFloat(&cfg.SpinFor, spec.SpinFor)
	setFloat(&cfg.Friction, spec.Friction)
	setFloat(&cfg.LowSpeed, spec.LowSpeed)
	setFloat(&cfg.SnapEasing, spec.SnapEasing)
	setFloat(&cfg.Tolerance, spec.Tolerance)
	setFloat(&cfg.Rest, spec.Rest)
	setFloat(&cfg.Countdown, spec.Countdown)
	setFloat(&cfg.Shutter, spec.Shutter)
	setFloat(&cfg.Pause, spec.Pause)

	gates, err := Gates(spec.Gates)
	if err != nil {
		return cfg, err
	}
	cfg.Gates = gates
	return cfg, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}
