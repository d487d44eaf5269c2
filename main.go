package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gonewx/balloons/pkg/app"
	"github.com/gonewx/balloons/pkg/config"
	"github.com/gonewx/balloons/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	seed       int64
)

var rootCmd = &cobra.Command{
	Use:   "balloons",
	Short: "Balloon launch effect on Ebitengine",
	Long: `Periodically launches balloons from the bottom-right of the screen.
Each balloon springs, arcs to the top, fades and spins away.

Keys: P pause, +/- emit interval, S stats, F11 fullscreen.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		embedded.Init(assetsFS, dataFS)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWindow()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "effect config file (default: embedded data/effect.yaml)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
}

// runWindow starts the ebiten game loop.
func runWindow() error {
	gameApp, err := app.NewApp(app.Config{
		Verbose:          verbose,
		EffectConfigPath: configPath,
		Seed:             seed,
	})
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// This will call Update() and Draw() repeatedly until the window is closed
	if err := ebiten.RunGame(gameApp); err != nil {
		return err
	}
	log.Printf("[main] Window closed")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
