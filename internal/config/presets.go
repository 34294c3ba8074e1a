package config

import "sort"

var Presets = map[string]*Config{
	"quick": {
		Ceiling: DefaultCeiling, WarnThreshold: DefaultWarnThreshold,
		MaxSteps: 10_000, Head: 3, Tail: 3,
		DataDir: DefaultDataDir, Theme: "minimal", FrameDelayMs: 50,
	},
	"deep": {
		Ceiling: "1000000000000000000000000000000", WarnThreshold: "1000000000000000000000",
		Head: 10, Tail: 10,
		DataDir: DefaultDataDir, Theme: DefaultTheme, FrameDelayMs: DefaultFrameDelayMs,
	},
	"bounded": {
		Ceiling: DefaultCeiling, WarnThreshold: DefaultWarnThreshold,
		MaxSteps: 1_000_000, Head: DefaultHead, Tail: DefaultTail,
		DataDir: DefaultDataDir, Theme: DefaultTheme, FrameDelayMs: DefaultFrameDelayMs,
	},
	"slow-motion": {
		Ceiling: DefaultCeiling, WarnThreshold: DefaultWarnThreshold,
		Head: DefaultHead, Tail: DefaultTail,
		DataDir: DefaultDataDir, Theme: "ocean", FrameDelayMs: MaxFrameDelayMs,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
