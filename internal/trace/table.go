package trace

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gonewx/balloons/pkg/timeline"
)

const (
	colTime    = 8
	colPos     = 18
	colScale   = 14
	colAngle   = 8
	colOpacity = 8
)

// RenderTable renders sampled rows as a column-aligned table.
func RenderTable(title string, rows []Row) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	if len(rows) > 0 {
		last := rows[len(rows)-1]
		b.WriteString(subheaderStyle.Render(fmt.Sprintf("%d samples, %.2fs", len(rows), last.Elapsed)))
		b.WriteString("\n")
	}

	b.WriteString(columnHeaderStyle.Render(formatColumns(
		"elapsed", "local", "position", "scale", "rotZ", "rotY", "opacity", "segments")))
	b.WriteString("\n")

	for _, row := range rows {
		line := formatRow(row)
		if row.Done {
			line = doneStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func formatRow(row Row) string {
	st := row.State
	segments := strings.Join(row.Active, ",")
	if row.Done {
		segments = "done"
	}
	return formatColumns(
		fmt.Sprintf("%.3f", row.Elapsed),
		fmt.Sprintf("%.3f", row.Local),
		formatVec(st.Position),
		fmt.Sprintf("%.2fx%.2f", st.Transform.ScaleX, st.Transform.ScaleY),
		fmt.Sprintf("%.2f", st.Transform.RotationZ),
		fmt.Sprintf("%.2f", st.Transform.RotationY),
		fmt.Sprintf("%.3f", st.Opacity),
		segments,
	)
}

func formatColumns(elapsed, local, pos, scale, rotZ, rotY, opacity, segments string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		pad(elapsed, colTime),
		pad(local, colTime),
		pad(pos, colPos),
		pad(scale, colScale),
		pad(rotZ, colAngle),
		pad(rotY, colAngle),
		pad(opacity, colOpacity),
		segments,
	)
}

func formatVec(v timeline.Vec2) string {
	return fmt.Sprintf("(%.1f, %.1f)", v.X, v.Y)
}

// pad right-pads s to width, always leaving one separating space.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s + " "
}
