package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcefield/pkg/render/forcegraph"
)

// newThemesCmd creates the themes command listing the built-in themes.
func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Available Themes"))
			fmt.Println(renderThemesTable(forcegraph.Themes()))
			return nil
		},
	}
}

// renderThemesTable formats the theme list as a bordered table with color
// swatches for each palette.
func renderThemesTable(themes []forcegraph.Theme) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(themes))
	for _, th := range themes {
		particles := "off"
		if th.Particles.Enabled {
			particles = fmt.Sprintf("%d", th.Particles.Count)
		}
		rows = append(rows, []string{
			th.Name,
			swatch(th.Background.Color),
			paletteSwatches(th.Palette),
			particles,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Theme", "Background", "Palette", "Particles").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	return t.Render()
}

// swatch renders a colored block for a single color.
func swatch(c forcegraph.Color) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("██")
}

// paletteSwatches renders one block per palette entry.
func paletteSwatches(p forcegraph.Palette) string {
	var b strings.Builder
	for _, c := range p.Colors {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("█"))
	}
	return b.String()
}
