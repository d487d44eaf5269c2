package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gonewx/balloons/internal/trace"
	"github.com/gonewx/balloons/pkg/app"
	"github.com/gonewx/balloons/pkg/config"
	"github.com/gonewx/balloons/pkg/effect"
	"github.com/gonewx/balloons/pkg/timeline"
	"github.com/spf13/cobra"
)

var (
	traceStep        float64
	traceInteractive bool
	traceWidth       float64
	traceHeight      float64
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Sample one balloon timeline without opening a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrace(cmd.OutOrStdout())
	},
}

func init() {
	traceCmd.Flags().Float64Var(&traceStep, "step", 0.1, "sampling step in seconds")
	traceCmd.Flags().BoolVarP(&traceInteractive, "interactive", "i", false, "scrub the timeline interactively")
	traceCmd.Flags().Float64Var(&traceWidth, "width", config.GameWindowWidth, "bounds width")
	traceCmd.Flags().Float64Var(&traceHeight, "height", config.GameWindowHeight, "bounds height")
	rootCmd.AddCommand(traceCmd)
}

func runTrace(out io.Writer) error {
	if !verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := app.LoadEffectConfig(configPath)
	if err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	builder, err := effect.NewBuilder(cfg)
	if err != nil {
		return fmt.Errorf("trace: %w", err)
	}

	s := seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	bounds := timeline.NewRect(traceWidth, traceHeight)
	tl, traj, err := builder.Build(bounds, rand.New(rand.NewSource(s)))
	if err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	title := fmt.Sprintf("balloon seed=%d  %.0fx%.0f  launch (%.1f, %.1f) -> (%.1f, %.1f)  spin %.1fπ",
		s, bounds.Width, bounds.Height,
		traj.LaunchStart.X, traj.LaunchStart.Y, traj.LaunchEnd.X, traj.LaunchEnd.Y,
		traj.SpinAngle/math.Pi)

	if traceInteractive {
		program := tea.NewProgram(trace.NewScrubber(title, tl, traceStep), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("trace: %w", err)
		}
		return nil
	}

	rows, err := trace.Sample(tl, traceStep)
	if err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	log.Printf("[trace] %d rows sampled", len(rows))
	_, err = fmt.Fprint(out, trace.RenderTable(title, rows))
	return err
}
