package cli

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcefield/pkg/pipeline"
	"github.com/matzehuels/forcefield/pkg/render/forcegraph"
	"github.com/matzehuels/forcefield/pkg/render/surface"
)

// playFPS is the terminal animation rate. The simulation still advances by
// the fixed timestep each frame, matching the non-interactive pipeline.
const playFPS = 30

// newPlayCmd creates the play command for exploring a graph interactively.
//
// The graph animates live in the terminal: hover highlights a node and its
// neighborhood, drag moves nodes, the mouse wheel zooms and 'f' freezes the
// simulation.
func newPlayCmd() *cobra.Command {
	var themeName string
	var particles bool
	var settle int

	cmd := &cobra.Command{
		Use:   "play [file]",
		Short: "Explore a graph interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Source:    args[0],
				Theme:     themeName,
				Particles: particles,
				Zoom:      1.0,
				// Terminal cells are the canvas; real size arrives with the
				// first window size message.
				Width:  80,
				Height: 48,
			}
			opts.SetRenderDefaults()

			g, err := pipeline.Parse(cmd.Context(), opts)
			if err != nil {
				return err
			}
			scene, err := pipeline.BuildScene(g, opts)
			if err != nil {
				return err
			}

			if settle > 0 {
				spin := newSpinnerWithContext(cmd.Context(), "Settling layout...")
				spin.Start()
				err := pipeline.Settle(cmd.Context(), scene, settle)
				spin.Stop()
				if err != nil {
					return err
				}
			}

			model := newPlayModel(scene)
			program := tea.NewProgram(model,
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
			)
			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&themeName, "theme", "t", "", "theme name (see 'forcefield themes')")
	cmd.Flags().BoolVar(&particles, "particles", false, "enable the background particle field")
	cmd.Flags().IntVar(&settle, "settle", 0, "simulation steps to run before the first frame")

	return cmd
}

// tickMsg drives the animation loop.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/playFPS, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// playModel is the bubbletea model for the interactive viewer.
// The scene's canvas is sized in terminal pixels: one column wide, two rows
// of pixels per terminal row via the half-block glyph.
type playModel struct {
	scene *forcegraph.Scene
	cols  int
	rows  int
	frame string
}

func newPlayModel(scene *forcegraph.Scene) playModel {
	return playModel{scene: scene, cols: 80, rows: 24}
}

func (m playModel) Init() tea.Cmd {
	return tickCmd()
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.scene.Step(pipeline.SettleStep)
		m.frame = m.renderFrame()
		return m, tickCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "f", " ":
			m.scene.AnimationRunning = !m.scene.AnimationRunning
		}

	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.rows = msg.Height - 1 // reserve the status line
		if m.cols < 10 {
			m.cols = 10
		}
		if m.rows < 5 {
			m.rows = 5
		}
		m.scene.Resize(float64(m.cols), float64(m.rows*2))
		m.frame = m.renderFrame()

	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

// handleMouse translates terminal cell coordinates into canvas pixels.
// A cell is one pixel wide and two pixels tall.
func (m playModel) handleMouse(msg tea.MouseMsg) {
	x := float64(msg.X)
	y := float64(msg.Y * 2)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scene.Wheel(x, y, -1)
		return
	case tea.MouseButtonWheelDown:
		m.scene.Wheel(x, y, 1)
		return
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		m.scene.PointerMove(x, y)
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.scene.PointerDown(x, y)
		}
	case tea.MouseActionRelease:
		m.scene.PointerUp()
	}
}

func (m playModel) View() string {
	if m.frame == "" {
		return "loading..."
	}
	return m.frame + "\n" + m.statusLine()
}

func (m playModel) statusLine() string {
	state := "running"
	if !m.scene.AnimationRunning {
		state = "frozen"
	}
	info := fmt.Sprintf("%s · %d nodes · %.1fx · %s",
		m.scene.Theme.Name, m.scene.Graph.Len(), m.scene.Transform.K, state)
	help := "drag move · wheel zoom · f freeze · q quit"
	return StyleDim.Render(info + "   " + help)
}

// renderFrame rasterizes the scene and converts pixel pairs to half-block
// glyphs, the upper pixel as foreground and the lower as background.
func (m playModel) renderFrame() string {
	raster, err := surface.NewRaster(m.cols, m.rows*2)
	if err != nil {
		return ""
	}
	forcegraph.RenderFrame(m.scene, raster)
	return halfBlocks(raster.Image(), m.cols, m.rows)
}

func halfBlocks(img image.Image, cols, rows int) string {
	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := pixelHex(img, col, row*2)
			bottom := pixelHex(img, col, row*2+1)
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀")
			b.WriteString(cell)
		}
		if row < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func pixelHex(img image.Image, x, y int) string {
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
