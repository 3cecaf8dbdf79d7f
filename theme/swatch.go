package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const swatchWidth = 14

var labelStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252")).
	Width(14).
	Padding(0, 1)

// Swatches renders one line per role: the role name followed by a block
// painted with the role's color.
func (p Palette) Swatches() string {
	var sb strings.Builder
	for _, r := range Roles() {
		c, _ := p.ColorFor(r)
		block := lipgloss.NewStyle().
			Background(lipgloss.Color(c)).
			Width(swatchWidth).
			Render("")
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(r.String()),
			block,
			fmt.Sprintf(" %s", c),
		))
		sb.WriteString("\n")
	}
	return sb.String()
}
