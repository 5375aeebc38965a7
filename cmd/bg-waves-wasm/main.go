//go:build js && wasm

// Command bg-waves-wasm mounts the wave background on the page's
// <canvas id="bg-waves"> element. It exposes bgWavesStop() to tear the
// animation down again.
package main

import (
	"os"
	"syscall/js"

	"github.com/charmbracelet/log"

	"github.com/iburimskiy/bg-waves/internal/config"
	"github.com/iburimskiy/bg-waves/internal/dom"
	"github.com/iburimskiy/bg-waves/internal/wave"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "bg-waves"})

	cfg := config.Default()
	if name := js.Global().Get("bgWavesPreset"); name.Type() == js.TypeString {
		p, err := config.Preset(name.String())
		if err != nil {
			logger.Warn("ignoring preset", "err", err)
		} else {
			cfg = p
		}
	}

	r, ok := wave.Mount(dom.New(), cfg, wave.WithLogger(logger))
	if !ok {
		logger.Info("no canvas", "id", cfg.CanvasID)
		return
	}
	r.Start()

	done := make(chan struct{})
	var stop js.Func
	stop = js.FuncOf(func(js.Value, []js.Value) any {
		r.Close()
		js.Global().Delete("bgWavesStop")
		stop.Release()
		close(done)
		return nil
	})
	js.Global().Set("bgWavesStop", stop)
	<-done
}
