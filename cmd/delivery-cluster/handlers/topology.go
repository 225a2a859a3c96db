package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"sigs.k8s.io/yaml"

	"github.com/cvent/delivery-cluster/internal/topology"
)

// Output formats of the topology command.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// now is the clock stamped on exported documents - can be replaced in tests.
var now = time.Now

var (
	topoColorBlue = lipgloss.Color("#3b82f6")
	topoColorRed  = lipgloss.Color("#ef4444")
	topoColorDim  = lipgloss.Color("#6b7280")

	topoHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(topoColorBlue).
			Padding(0, 1)

	topoCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	topoErrorStyle = lipgloss.NewStyle().
			Foreground(topoColorRed).
			Padding(0, 1)

	topoBorderStyle = lipgloss.NewStyle().
			Foreground(topoColorDim)
)

// Topology resolves every node and prints the result in the given format.
// Nodes that failed are still printed; the joined error is returned after.
func Topology(ctx context.Context, g Globals, output string) error {
	render, err := topologyRenderer(output)
	if err != nil {
		return err
	}

	r, err := newResolver(g)
	if err != nil {
		return err
	}

	nodes, resolveErr := r.ResolveAll(ctx)

	out, err := render(topology.NewDocument(r.Config(), nodes, now()))
	if err != nil {
		return err
	}
	fmt.Print(out)

	return resolveErr
}

func topologyRenderer(output string) (func(topology.Document) (string, error), error) {
	switch output {
	case OutputTable, "":
		return func(doc topology.Document) (string, error) {
			return renderTopologyTable(doc), nil
		}, nil
	case OutputJSON:
		return func(doc topology.Document) (string, error) {
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return "", fmt.Errorf("failed to marshal topology: %w", err)
			}
			return string(data) + "\n", nil
		}, nil
	case OutputYAML:
		return func(doc topology.Document) (string, error) {
			data, err := yaml.Marshal(doc)
			if err != nil {
				return "", fmt.Errorf("failed to marshal topology: %w", err)
			}
			return string(data), nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q: must be one of %s, %s, %s", output, OutputTable, OutputJSON, OutputYAML)
	}
}

// renderTopologyTable produces a lipgloss table with one row per node.
func renderTopologyTable(doc topology.Document) string {
	rows := make([][]string, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		index := ""
		if n.Index > 0 {
			index = strconv.Itoa(n.Index)
		}
		status := "ok"
		if n.Err != nil {
			status = n.Err.Error()
		}
		rows = append(rows, []string{n.Role.String(), index, n.Hostname, n.FQDN, status})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(topoBorderStyle).
		Headers("ROLE", "INDEX", "HOSTNAME", "FQDN", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return topoHeaderStyle
			case col == 4 && doc.Nodes[row].Err != nil:
				return topoErrorStyle
			default:
				return topoCellStyle
			}
		})

	return fmt.Sprintf("cluster %s (driver %s)\n%s\n", doc.Cluster, doc.Driver, t.Render())
}
