package netif

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Column widths of the interface table, without padding.
var columnWidths = []int{4, 20, 15, 25, 20, 20}

// Headers are the table column titles.
var Headers = []string{"#", "Name", "IPv4", "IPv6", "Gateway", "Description"}

var (
	grayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cyanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	whiteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// styleFor picks the row colour from a description.
func styleFor(desc string) lipgloss.Style {
	switch {
	case strings.Contains(desc, "Disconnected"):
		return grayStyle
	case strings.Contains(desc, "WiFi"):
		return cyanStyle
	case strings.Contains(desc, "LAN"):
		return greenStyle
	case strings.Contains(desc, "Virtual"):
		return yellowStyle
	}
	return whiteStyle
}

// Render draws ifaces as a bordered table followed by a colour legend.
// Cells wider than their column wrap onto further lines.
func Render(ifaces []Interface, color bool) string {
	rows := make([][]string, 0, len(ifaces))
	for i, ifc := range ifaces {
		cells := []string{strconv.Itoa(i + 1), ifc.Name, ifc.IPv4, ifc.IPv6, ifc.Gateway, ifc.Description}
		if color {
			style := styleFor(ifc.Description)
			for j, c := range cells {
				cells[j] = style.Render(c)
			}
		}
		rows = append(rows, cells)
	}

	headerStyle := lipgloss.NewStyle().Padding(0, 1)
	if color {
		headerStyle = headerStyle.Bold(true)
	}
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Headers(Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			width := columnWidths[col] + 2
			if row == table.HeaderRow {
				return headerStyle.Width(width)
			}
			return cellStyle.Width(width)
		})

	return t.Render() + "\n" + Legend(color)
}

// Legend returns the colour key printed under the table.
func Legend(color bool) string {
	entries := []struct {
		label string
		style lipgloss.Style
	}{
		{"● " + WiFi, cyanStyle},
		{"● " + MainLAN, greenStyle},
		{"● " + Virtual, yellowStyle},
		{"● " + Disconnected, grayStyle},
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if color {
			parts = append(parts, e.style.Render(e.label))
		} else {
			parts = append(parts, e.label)
		}
	}
	return " " + strings.Join(parts, "   ")
}
