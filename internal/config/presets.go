package config

import "sort"

var Presets = map[string]*Config{
	"small":   {Seed: DefaultSeed, Samples: 100, Reclip: true, LogLevel: DefaultLogLevel, LogFormat: DefaultLogFormat},
	"default": {Seed: DefaultSeed, Samples: DefaultSamples, Reclip: true, LogLevel: DefaultLogLevel, LogFormat: DefaultLogFormat},
	"large":   {Seed: DefaultSeed, Samples: 5000, Reclip: true, LogLevel: DefaultLogLevel, LogFormat: DefaultLogFormat},
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

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
