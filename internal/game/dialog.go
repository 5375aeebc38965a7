package game

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/ncruces/zenity"
	"github.com/pkg/errors"

	"github.com/iburimskiy/bg-waves/internal/wave"
)

// PickAudioFile asks for an audio file. A cancelled dialog returns "" and no error.
func PickAudioFile() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", errors.Wrap(err, "select audio file")
	}
	return filename, nil
}

// PickColor opens a colour chooser preset to initial and returns the choice
// as "#rrggbb". A cancelled dialog returns initial unchanged.
func PickColor(title, initial string) (string, error) {
	start := wave.ParseHex(initial, 1).NRGBA(1)
	c, err := zenity.SelectColor(zenity.Title(title), zenity.Color(start))
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return initial, nil
		}
		return initial, errors.Wrap(err, "select colour")
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return initial, nil
	}
	return cf.Hex(), nil
}
