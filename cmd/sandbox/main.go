// Sandbox runs a small fishing grid in a window with sliders for the world
// parameters, for eyeballing ship behaviour before a full-size run.
//
// Usage: go run ./cmd/sandbox
package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/grandfishing/camera"
	"github.com/pthm-cable/grandfishing/config"
	"github.com/pthm-cable/grandfishing/game"
	"github.com/pthm-cable/grandfishing/renderer"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 600
	panelWidth   = windowWidth - previewSize - 30
)

// SandboxParams holds the slider values.
type SandboxParams struct {
	Width          float32
	Height         float32
	Ships          float32
	WinThreshold   float32
	TicksPerSecond float32
	Seed           int64
}

func defaultParams() SandboxParams {
	return SandboxParams{
		Width:          40,
		Height:         40,
		Ships:          60,
		WinThreshold:   40,
		TicksPerSecond: 10,
		Seed:           12345,
	}
}

// toConfig overlays the slider values on the embedded defaults.
func (p SandboxParams) toConfig() (*config.Config, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	cfg.World.Width = uint64(p.Width)
	cfg.World.Height = uint64(p.Height)
	cfg.World.Ships = int(p.Ships)
	cfg.World.WinThreshold = uint64(p.WinThreshold)
	cfg.Timing.TicksPerSecond = int(p.TicksPerSecond)
	cfg.Derived.TickDuration = time.Second / time.Duration(cfg.Timing.TicksPerSecond)
	return cfg, cfg.Validate()
}

// sandbox owns the running simulation and its view.
type sandbox struct {
	cfg   *config.Config
	g     *game.Game
	cam   *camera.Camera
	scene *renderer.Scene
}

func newSandbox(p SandboxParams) (*sandbox, error) {
	cfg, err := p.toConfig()
	if err != nil {
		return nil, err
	}
	g, err := game.NewGameWithOptions(cfg, game.Options{Seed: p.Seed})
	if err != nil {
		return nil, err
	}
	pitch := cfg.Derived.CellPitch32
	cam := camera.New(previewSize, previewSize, float32(cfg.World.Width)*pitch, float32(cfg.World.Height)*pitch)
	return &sandbox{cfg: cfg, g: g, cam: cam, scene: renderer.NewScene(cam, pitch)}, nil
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "GrandFishing Sandbox")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	target := rl.LoadRenderTexture(previewSize, previewSize)
	defer rl.UnloadRenderTexture(target)

	params := defaultParams()
	sb, err := newSandbox(params)
	if err != nil {
		log.Fatalf("failed to start sandbox: %v", err)
	}
	defer func() { sb.g.Unload() }()

	running := true
	needsRestart := false
	lastTick := time.Now()

	for !rl.WindowShouldClose() {
		if needsRestart {
			next, err := newSandbox(params)
			if err != nil {
				log.Printf("invalid parameters: %v", err)
			} else {
				sb.g.Unload()
				sb = next
				lastTick = time.Now()
			}
			needsRestart = false
		}

		if running && !sb.g.Finished() && time.Since(lastTick) >= sb.cfg.Derived.TickDuration {
			sb.g.Step()
			lastTick = lastTick.Add(sb.cfg.Derived.TickDuration)
		}

		view := sb.g.View()

		rl.BeginTextureMode(target)
		rl.ClearBackground(renderer.Background)
		sb.scene.DrawCells(view)
		sb.scene.DrawShips(view)
		sb.scene.DrawBorder(view)
		rl.EndTextureMode()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Render textures are stored upside down.
		rl.DrawTexturePro(
			target.Texture,
			rl.Rectangle{X: 0, Y: 0, Width: previewSize, Height: -previewSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Tick: %d  Live: %d / %d  Active cells: %d",
			view.Tick-1, view.Live, len(view.Ships), view.Cells.Len()), 15, statsY, 16, rl.DarkGray)
		if sb.g.Finished() {
			rl.DrawText("Fleet gone", 15, statsY+20, 16, rl.Maroon)
		}

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("World Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		sliders := []struct {
			label    string
			value    *float32
			min, max float32
		}{
			{"Grid width", &params.Width, 2, 200},
			{"Grid height", &params.Height, 2, 200},
			{"Ships", &params.Ships, 0, 5000},
			{"Win threshold", &params.WinThreshold, 1, 1000},
			{"Ticks per second", &params.TicksPerSecond, 1, 60},
		}
		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				*s.value, s.min, s.max,
			)
			v = float32(int(v))
			rl.DrawText(fmt.Sprintf("%.0f", *s.value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if v != *s.value {
				*s.value = v
				needsRestart = true
			}
			panelY += 35
		}

		rl.DrawText(fmt.Sprintf("Seed: %d", params.Seed), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 30

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(running, "Pause", "Run")) {
			running = !running
			lastTick = time.Now()
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Step") {
			if !sb.g.Finished() {
				sb.g.Step()
			}
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRestart = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRestart = true
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		snippet := worldYAML(sb.cfg)
		for _, line := range strings.Split(strings.TrimRight(snippet, "\n"), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(snippet)
		}

		rl.EndDrawing()
	}
}

// worldYAML renders the world and timing sections as a config overlay.
func worldYAML(cfg *config.Config) string {
	out, err := yaml.Marshal(struct {
		World  config.WorldConfig  `yaml:"world"`
		Timing config.TimingConfig `yaml:"timing"`
	}{cfg.World, cfg.Timing})
	if err != nil {
		return err.Error()
	}
	return string(out)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
