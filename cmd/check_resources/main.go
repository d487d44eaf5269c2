// check_resources 检查资源声明与效果配置是否一致
//
// 逐个解码 resources.yaml 中声明的图片，并确认效果配置里的每个图片变体都能解析。
// 在仓库根目录运行：
//
//	go run ./cmd/check_resources
//	go run ./cmd/check_resources --config my_effect.yaml
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gonewx/balloons/pkg/config"
	"github.com/gonewx/balloons/pkg/game"
	"github.com/spf13/cobra"
)

var (
	rootDir    string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:           "check_resources",
	Short:         "Verify that every balloon image declared and referenced can be decoded",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return check()
	},
}

func init() {
	rootCmd.Flags().StringVar(&rootDir, "root", ".", "repository root containing assets/ and data/")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultEffectConfigPath, "effect config, relative to --root")
}

func check() error {
	fsys := os.DirFS(rootDir)
	rm := game.NewResourceManager(fsys)
	if err := rm.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
		return err
	}

	failed := 0
	ids := rm.ImageIDs()
	fmt.Printf("=== 资源声明: %d 张图片 ===\n", len(ids))
	for _, id := range ids {
		path, _ := rm.ResolvePath(id)
		img, err := rm.DecodeImage(path)
		if err != nil {
			fmt.Printf("  ❌ %-16s %s: %v\n", id, path, err)
			failed++
			continue
		}
		b := img.Bounds()
		fmt.Printf("  ✅ %-16s %s (%dx%d)\n", id, path, b.Dx(), b.Dy())
	}

	cfg, err := config.LoadEffectConfig(filepath.Join(rootDir, configPath))
	if err != nil {
		return err
	}
	fmt.Printf("\n=== 效果配置: %d 个图片变体 ===\n", len(cfg.Variants))
	for _, id := range cfg.Variants {
		if !rm.HasImage(id) {
			fmt.Printf("  ❌ %s 未在资源声明中定义\n", id)
			failed++
			continue
		}
		fmt.Printf("  ✅ %s\n", id)
	}

	if failed > 0 {
		return fmt.Errorf("%d resource problems found", failed)
	}
	fmt.Println("\n全部通过")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
