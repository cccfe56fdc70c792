package preview

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/border"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/tube"
)

// ansiColors maps catalog color names onto the 16-colour palette.
var ansiColors = map[string]lipgloss.Color{
	"black":  lipgloss.Color("0"),
	"red":    lipgloss.Color("1"),
	"green":  lipgloss.Color("2"),
	"yellow": lipgloss.Color("3"),
	"blue":   lipgloss.Color("4"),
	"purple": lipgloss.Color("5"),
	"orange": lipgloss.Color("208"),
	"gray":   lipgloss.Color("8"),
}

var dashedBorder = lipgloss.Border{
	Top: "╌", Bottom: "╌", Left: "╎", Right: "╎",
	TopLeft: "┌", TopRight: "┐", BottomLeft: "└", BottomRight: "┘",
}

var dottedBorder = lipgloss.Border{
	Top: "┈", Bottom: "┈", Left: "┊", Right: "┊",
	TopLeft: "┌", TopRight: "┐", BottomLeft: "└", BottomRight: "┘",
}

// thickFrom is the pixel width from which solid borders render heavy.
const thickFrom = 4

// TerminalBorder returns the line set approximating a CSS border style.
func TerminalBorder(style string, width int) lipgloss.Border {
	switch strings.ToLower(style) {
	case "double":
		return lipgloss.DoubleBorder()
	case "dashed":
		return dashedBorder
	case "dotted":
		return dottedBorder
	default:
		if width >= thickFrom {
			return lipgloss.ThickBorder()
		}
		return lipgloss.NormalBorder()
	}
}

// Terminal draws the border state as a box around its content.
func Terminal(s border.State) string {
	width, _ := strconv.Atoi(s.Width)
	style := lipgloss.NewStyle().
		Border(TerminalBorder(s.Style, width)).
		Padding(0, 1)
	if color, ok := ansiColors[strings.ToLower(s.Color)]; ok {
		style = style.BorderForeground(color)
	}
	return style.Render(s.Content)
}

// TerminalTube draws the tube state as a rounded box tinted with the tube's
// colour and, when it is a hex value, its background.
func TerminalTube(s tube.State) string {
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	if s.HasPadding() {
		style = style.Padding(0, 2)
	}
	if color, ok := ansiColors[strings.ToLower(s.Tube)]; ok {
		style = style.BorderForeground(color)
	}
	if strings.HasPrefix(s.BgColor, "#") {
		style = style.Background(lipgloss.Color(s.BgColor))
	}
	return style.Render(s.Content)
}
