package trace

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gonewx/balloons/pkg/timeline"
)

const (
	barWidth   = 40
	fineFactor = 10 // shift+arrow moves by step/fineFactor
)

// Scrubber is a Bubble Tea model that steps through a single timeline.
type Scrubber struct {
	tl      *timeline.Timeline
	title   string
	step    float64
	elapsed float64
	width   int
	height  int
}

// NewScrubber creates a scrubber positioned at the start of tl.
func NewScrubber(title string, tl *timeline.Timeline, step float64) Scrubber {
	if step <= 0 {
		step = tl.Duration() / 100
	}
	return Scrubber{
		tl:    tl,
		title: title,
		step:  step,
	}
}

// Elapsed returns the current scrub position in seconds.
func (s Scrubber) Elapsed() float64 {
	return s.elapsed
}

// Init implements tea.Model.
func (s Scrubber) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (s Scrubber) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)

	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		return s, nil
	}
	return s, nil
}

func (s Scrubber) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return s, tea.Quit

	case "l", "right":
		s.seek(s.elapsed + s.step)
	case "h", "left":
		s.seek(s.elapsed - s.step)
	case "L", "shift+right":
		s.seek(s.elapsed + s.step/fineFactor)
	case "H", "shift+left":
		s.seek(s.elapsed - s.step/fineFactor)
	case "g", "home":
		s.seek(0)
	case "G", "end":
		s.seek(s.tl.Duration())
	}
	return s, nil
}

func (s *Scrubber) seek(elapsed float64) {
	s.elapsed = math.Max(0, math.Min(elapsed, s.tl.Duration()))
}

// View renders the scrubber.
func (s Scrubber) View() string {
	var b strings.Builder
	row := At(s.tl, s.elapsed)

	b.WriteString(headerStyle.Render(s.title))
	b.WriteString("\n")
	b.WriteString(subheaderStyle.Render(fmt.Sprintf("elapsed %.3fs / %.2fs   local %.3fs",
		row.Elapsed, s.tl.Duration(), row.Local)))
	b.WriteString("\n\n")

	// one bar per segment, cursor at the current local time
	for _, seg := range s.tl.Segments() {
		b.WriteString(pad(seg.Name, 8))
		b.WriteString(s.renderBar(seg, row.Local))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	st := row.State
	fmt.Fprintf(&b, "position  %s\n", formatVec(st.Position))
	fmt.Fprintf(&b, "scale     %.3f x %.3f\n", st.Transform.ScaleX, st.Transform.ScaleY)
	fmt.Fprintf(&b, "rotation  z=%.3f  y=%.3f\n", st.Transform.RotationZ, st.Transform.RotationY)
	fmt.Fprintf(&b, "depth     %.1f\n", st.Transform.Depth)
	fmt.Fprintf(&b, "opacity   %.3f\n", st.Opacity)
	if row.Done {
		b.WriteString(doneStyle.Render("complete"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusBarStyle.Render("h/l step  H/L fine  g/G start/end  q quit"))
	return b.String()
}

// renderBar draws the span of seg over the timeline with the cursor at local.
func (s Scrubber) renderBar(seg timeline.Segment, local float64) string {
	duration := s.tl.Duration()
	cell := func(t float64) int {
		return int(math.Round(t / duration * float64(barWidth-1)))
	}
	begin, end, cursor := cell(seg.Begin), cell(seg.End()), cell(local)

	var b strings.Builder
	for i := 0; i < barWidth; i++ {
		switch {
		case i == cursor:
			b.WriteString(cursorStyle.Render("|"))
		case i >= begin && i <= end:
			b.WriteString(barStyle.Render("="))
		default:
			b.WriteString(statusBarStyle.Render("."))
		}
	}
	return b.String()
}
