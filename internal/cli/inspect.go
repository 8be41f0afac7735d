package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/pipeline"
)

// inspectTopNodes caps the degree table so huge graphs stay readable.
const inspectTopNodes = 10

// newInspectCmd creates the inspect command for summarizing a graph without
// rendering it.
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file|url>",
		Short: "Summarize a graph's structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := pipeline.Parse(cmd.Context(), pipeline.Options{Source: args[0]})
			if err != nil {
				return err
			}
			printInspection(g)
			return nil
		},
	}
}

func printInspection(g graph.Graph) {
	components := g.Components()
	isolated := g.Isolated()
	groups := g.Groups()

	fmt.Println(StyleTitle.Render("Graph Structure"))
	printDetail("Nodes: %d", len(g.Nodes))
	printDetail("Links: %d", len(g.Links))
	printDetail("Components: %d", len(components))
	if len(isolated) > 0 {
		printDetail("Isolated nodes: %d", len(isolated))
	}
	if len(groups) > 0 {
		printDetail("Groups: %s", joinLimited(groups, 8))
	}

	fmt.Println()
	fmt.Println(renderDegreeTable(g))
}

// renderDegreeTable lists the most connected nodes.
func renderDegreeTable(g graph.Graph) string {
	degrees := g.Degrees()

	nodes := make([]graph.Node, len(g.Nodes))
	copy(nodes, g.Nodes)
	sort.SliceStable(nodes, func(i, j int) bool {
		return degrees[nodes[i].ID] > degrees[nodes[j].ID]
	})
	if len(nodes) > inspectTopNodes {
		nodes = nodes[:inspectTopNodes]
	}

	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		rows = append(rows, []string{
			label,
			n.Group,
			fmt.Sprintf("%d", degrees[n.ID]),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Node", "Group", "Degree").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	return t.Render()
}

// joinLimited joins up to n items, appending a count for the rest.
func joinLimited(items []string, n int) string {
	if len(items) <= n {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(items[:n], ", "), len(items)-n)
}
