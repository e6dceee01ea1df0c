// lightsim 无窗口运行一个光线谜题关卡，打印每帧的光束折线和传感器激活
//
// 用法:
//
//	go run ./cmd/lightsim -level data/levels/level_1.yaml -frames 120
//	go run ./cmd/lightsim -level data/levels/level_2.yaml -frames 300 -every 30 -verbose
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/decker502/prism/pkg/config"
	"github.com/decker502/prism/pkg/event"
	"github.com/decker502/prism/pkg/scenes"
	"github.com/decker502/prism/pkg/types"
)

var (
	levelPath   = flag.String("level", "data/levels/level_1.yaml", "关卡 YAML 文件路径")
	physicsPath = flag.String("physics", "data/light_physics.yaml", "光线物理配置路径（不存在时使用默认值）")
	frames      = flag.Int("frames", 120, "模拟帧数")
	dt          = flag.Float64("dt", 1.0/60.0, "每帧时间（秒）")
	every       = flag.Int("every", 0, "每隔多少帧打印一次光束折线，0 表示只打印最后一帧")
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	level, err := config.LoadLevelConfig(*levelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载关卡失败: %v\n", err)
		os.Exit(1)
	}
	physicsConfig, err := config.LoadLightPhysicsConfig(*physicsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载光线物理配置失败: %v\n", err)
		os.Exit(1)
	}
	if *frames <= 0 || *dt <= 0 {
		fmt.Fprintln(os.Stderr, "frames 和 dt 必须为正数")
		os.Exit(2)
	}

	scene, err := scenes.NewPuzzleScene(level, physicsConfig, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "创建场景失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("level %s (%s): %d frames, dt=%.4f\n", level.ID, level.Name, *frames, *dt)

	for i := 0; i < *frames; i++ {
		if err := scene.Step(*dt); err != nil {
			fmt.Fprintf(os.Stderr, "frame %d: %v\n", scene.Frame(), err)
			os.Exit(1)
		}

		for _, ev := range scene.LastEvents() {
			if ev.Type == event.TypeCrystalToggle {
				fmt.Printf("frame %4d: sensor activated, toggle %s\n", ev.Frame, ev.Crystal)
			}
		}

		last := i == *frames-1
		if last || (*every > 0 && scene.Frame()%uint64(*every) == 0) {
			printBeams(scene)
		}
	}

	fmt.Printf("active crystals: %v\n", scene.ActiveCrystals())
}

// printBeams 按颜色打印本帧的光束段
func printBeams(scene *scenes.PuzzleScene) {
	fmt.Printf("frame %4d beams:\n", scene.Frame())
	for _, c := range types.AllLightColors {
		segs := scene.LiveSegments(c)
		if len(segs) == 0 {
			continue
		}
		parts := make([]string, 0, len(segs))
		for _, s := range segs {
			parts = append(parts, fmt.Sprintf("(%.1f,%.1f)->(%.1f,%.1f)", s.Start.X(), s.Start.Y(), s.End.X(), s.End.Y()))
		}
		fmt.Printf("  %-5s %s\n", c, strings.Join(parts, " "))
	}
	for i, s := range scene.Sensors() {
		fmt.Printf("  sensor[%d] %s hit=%d exposure=%.2fs\n", i, s.ToggleColor, s.HitCount, s.CumulativeExposure)
	}
}
