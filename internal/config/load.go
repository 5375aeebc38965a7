package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// file is the on-disk shape:
//
//	preset = "drift"
//
//	[wave]
//	lines = 20
//
//	[theme]
//	teal = "#6ab0b8"
type file struct {
	Preset string `toml:"preset"`
	Wave   Wave   `toml:"wave"`
	Theme  Theme  `toml:"theme"`
}

// Load reads a TOML config file. The preset named by the top-level "preset"
// key (or DefaultPreset) is the base; [wave] and [theme] override it key by
// key. Keys that match no field are returned so the caller can warn about them.
func Load(path string) (Wave, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Wave{}, nil, errors.Wrap(err, "read config")
	}
	return Parse(string(data))
}

// Parse is Load without the file read.
func Parse(data string) (Wave, []string, error) {
	var head struct {
		Preset string `toml:"preset"`
	}
	if _, err := toml.Decode(data, &head); err != nil {
		return Wave{}, nil, errors.Wrap(err, "decode config")
	}
	name := head.Preset
	if name == "" {
		name = DefaultPreset
	}
	w, err := Preset(name)
	if err != nil {
		return Wave{}, nil, err
	}

	f := file{Preset: name, Wave: w, Theme: w.Theme}
	md, err := toml.Decode(data, &f)
	if err != nil {
		return Wave{}, nil, errors.Wrap(err, "decode config")
	}
	w = f.Wave
	w.Theme = f.Theme

	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	if err := w.Validate(); err != nil {
		return Wave{}, unknown, errors.Wrapf(err, "preset %s", name)
	}
	return w, unknown, nil
}
