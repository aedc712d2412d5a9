package main

import (
	"errors"
	"flag"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/orrery/nbody"
	"github.com/plus3/orrery/nbody/debugui"
	debugui_ebiten "github.com/plus3/orrery/nbody/debugui/ebiten"
	"github.com/plus3/orrery/render"
	"github.com/plus3/orrery/scene"
)

const zoomStep = 1.25

var background = color.RGBA{A: 0xff}

type Game struct {
	stage    *nbody.Stage
	renderer *render.Renderer
	guard    *nbody.FiniteGuard

	paused    bool
	stepOnce  bool
	haltNoted bool

	ui           *debugui.UI
	imguiBackend *debugui_ebiten.ImguiBackend
}

func main() {
	scenePath := flag.String("scene", "", "Path to a JSON scene file. The built-in three-body scene is used when empty.")
	trail := flag.Int("trail", 0, "Trail length per body. Overrides the scene's trail_length when positive.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug windows.")
	width := flag.Int("width", 1280, "Window width.")
	height := flag.Int("height", 720, "Window height.")
	zoom := flag.Float64("zoom", 1, "Initial zoom factor.")
	flag.Parse()

	s := scene.Default()
	if *scenePath != "" {
		var err error
		s, err = scene.Load(*scenePath)
		if err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}
	}
	log.Printf("Loaded scene %q with %d bodies\n", s.Name, len(s.Bodies))

	space := s.NewSpace()
	view := s.NewView(*trail)

	guard := &nbody.FiniteGuard{}
	stage := nbody.NewDefaultStage(space, view)
	stage.Register(guard)

	game := &Game{
		stage:    stage,
		renderer: render.New(),
		guard:    guard,
	}
	game.renderer.SetZoom(float32(*zoom))

	title := "Orrery - " + s.Name
	if *debug {
		game.ui = debugui.New(120)
		stage.Register(game.ui.History)
		game.imguiBackend = debugui_ebiten.NewImguiBackend(title, *width, *height)
	} else {
		ebiten.SetWindowSize(*width, *height)
		ebiten.SetWindowTitle(title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Draw once so the first frame shows the initial state.
	view.Update(space)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("Game loop failed: %v", err)
	}

	stats := nbody.CollectStats(space)
	log.Printf("Stopped after %d steps, energy %.6g\n", stats.Steps, stats.TotalEnergy)
}

func (g *Game) Update() error {
	if g.imguiBackend != nil {
		g.imguiBackend.BeginFrame()
		defer g.imguiBackend.EndFrame()
		g.ui.Render(g.stage)
	}

	if err := g.handleInput(); err != nil {
		return err
	}

	if g.halted() {
		return nil
	}

	if !g.paused || g.stepOnce {
		g.stage.Once()
		g.stepOnce = false
	}
	return nil
}

func (g *Game) handleInput() error {
	if g.ui != nil && g.ui.Input().WantCaptureKeyboard {
		return nil
	}

	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && g.paused {
		g.stepOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.stage.View().ClearTracks()
		g.renderer.Forget()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.renderer.SetZoom(g.renderer.Zoom() * zoomStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.renderer.SetZoom(g.renderer.Zoom() / zoomStep)
	}

	if g.ui == nil || !g.ui.Input().WantCaptureMouse {
		if _, dy := ebiten.Wheel(); dy > 0 {
			g.renderer.SetZoom(g.renderer.Zoom() * zoomStep)
		} else if dy < 0 {
			g.renderer.SetZoom(g.renderer.Zoom() / zoomStep)
		}
	}
	return nil
}

func (g *Game) halted() bool {
	tick, halted := g.guard.Halted()
	if halted && !g.haltNoted {
		log.Printf("Simulation halted at tick %d: state is no longer finite\n", tick)
		g.haltNoted = true
	}
	return halted
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.renderer.Draw(screen, g.stage.View())

	if g.imguiBackend != nil {
		g.imguiBackend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imguiBackend != nil {
		g.imguiBackend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
