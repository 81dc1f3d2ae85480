// orbitview draws the reference Euler and Verlet orbits in a window, one
// simulation step per game tick.
package main

import (
	"flag"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/orbitsim/internal/viewport"
	"github.com/plus3/orbitsim/orbit"
	"github.com/plus3/orbitsim/physics"
	"k8s.io/klog/v2"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	TrailLength  = 400
)

var schemeColors = map[physics.Scheme]color.RGBA{
	physics.SchemeFixed:  {255, 223, 120, 255},
	physics.SchemeEuler:  {255, 140, 140, 255},
	physics.SchemeVerlet: {140, 200, 255, 255},
}

type Game struct {
	sim      *orbit.Simulation
	view     viewport.Viewport
	trails   map[string]*viewport.Trail
	paused   bool
	stopped  error
	showHelp bool
}

func main() {
	scenario := flag.String("scenario", "", "Scenario file (YAML or JSON); the reference scenario when empty")
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	sc := orbit.Reference()
	if *scenario != "" {
		var err error
		if sc, err = orbit.LoadScenario(*scenario); err != nil {
			klog.Fatalf("Loading scenario: %v", err)
		}
	}

	sim, err := orbit.New(sc)
	if err != nil {
		klog.Fatalf("Building simulation: %v", err)
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("orbitview - " + sim.Name())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(sim.TicksPerSecond())

	game := &Game{
		sim:    sim,
		view:   viewport.New(ScreenWidth, ScreenHeight),
		trails: make(map[string]*viewport.Trail),
	}

	if err := ebiten.RunGame(game); err != nil {
		klog.Fatalf("Running viewer: %v", err)
	}
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}

	if g.paused || g.stopped != nil {
		return nil
	}

	if err := g.sim.Step(); err != nil {
		g.stopped = err
		klog.Errorf("Simulation stopped at tick %d: %v", g.sim.Tick(), err)
		return nil
	}

	for _, b := range g.sim.Snapshot().Bodies {
		if b.Attractor {
			continue
		}
		trail, ok := g.trails[b.Name]
		if !ok {
			trail = viewport.NewTrail(TrailLength)
			g.trails[b.Name] = trail
		}
		trail.Push(b.Position)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{16, 18, 28, 255})

	snap := g.sim.Snapshot()
	for _, b := range snap.Bodies {
		c := schemeColors[b.Scheme]

		if trail, ok := g.trails[b.Name]; ok {
			faded := color.RGBA{c.R / 2, c.G / 2, c.B / 2, 255}
			for _, p := range trail.Points {
				x, y := g.view.ToScreen(p)
				vector.DrawFilledCircle(screen, x, y, 1, faded, false)
			}
		}

		if !g.view.Visible(b.Position) {
			continue
		}
		radius := float32(3)
		if b.Attractor {
			radius = 8
		}
		x, y := g.view.ToScreen(b.Position)
		vector.DrawFilledCircle(screen, x, y, radius, c, true)
		ebitenutil.DebugPrintAt(screen, b.Name, int(x)+6, int(y)+6)
	}

	g.drawStatus(screen, snap)
}

func (g *Game) drawStatus(screen *ebiten.Image, snap orbit.Snapshot) {
	status := fmt.Sprintf("tick %d  t=%.2f  TPS %.0f", snap.Tick, snap.Time, ebiten.ActualTPS())
	switch {
	case g.stopped != nil:
		status += "  STOPPED"
	case g.paused:
		status += "  PAUSED"
	}
	ebitenutil.DebugPrintAt(screen, status, 10, 10)

	line := 26
	for _, d := range g.sim.Diagnostics() {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%-8s %-6s r=%.4f E=%.6f", d.Name, d.Scheme, d.Radius, d.Energy), 10, line)
		line += 16
	}

	if g.stopped != nil {
		ebitenutil.DebugPrintAt(screen, g.stopped.Error(), 10, line+8)
	}
	if g.showHelp {
		ebitenutil.DebugPrintAt(screen, "P pause  H help  Q quit", 10, g.view.Height-20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.view.Width = outsideWidth
	g.view.Height = outsideHeight
	return outsideWidth, outsideHeight
}
