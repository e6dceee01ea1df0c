// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/prism/pkg/game"
	"github.com/decker502/prism/pkg/scenes"
	"github.com/decker502/prism/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 逻辑屏幕尺寸
const (
	WindowWidth  = 960
	WindowHeight = 540
)

const (
	audioSampleRate    = 48000
	resourceConfigPath = "assets/config/resources.yaml"
	buttonSoundPath    = "assets/sfx/button.wav"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Level 指定要加载的关卡ID（如 "2"），为空则加载第一关
	Level string
	// Mute 不创建音频上下文（无音频设备的环境）
	Mute bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	var audioContext *audio.Context
	if !cfg.Mute {
		audioContext = audio.NewContext(audioSampleRate)
	}

	resourceManager := game.NewResourceManager(audioContext)
	if err := resourceManager.LoadResourceConfig(resourceConfigPath); err != nil {
		log.Printf("[App] Warning: %v, using built-in sound table", err)
		resourceManager.RegisterSound(systems.SoundButton, buttonSoundPath)
	}

	audioManager := game.NewAudioManager(resourceManager)
	audioManager.PreloadSounds(resourceManager.SoundIDs())
	log.Printf("[App] AudioManager initialized (audio=%v)", resourceManager.HasAudio())

	physicsConfig, err := scenes.LoadEmbeddedPhysicsConfig()
	if err != nil {
		return nil, fmt.Errorf("光线物理配置加载失败: %w", err)
	}
	log.Printf("[Config] Light physics: speed=%.2f epsilon=%.3f", physicsConfig.LightSpeed, physicsConfig.ImpactEpsilon)

	levels, err := scenes.ListEmbeddedLevels()
	if err != nil {
		return nil, fmt.Errorf("关卡列表加载失败: %w", err)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no levels found")
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SetLevelOrder(levels)
	sceneManager.SetSceneFactory(scenes.NewPuzzleSceneFactory(physicsConfig, audioManager))

	levelToLoad := cfg.Level
	if levelToLoad == "" {
		levelToLoad = levels[0]
	}
	log.Printf("[App] Starting level: %s", levelToLoad)

	if err := sceneManager.LoadLevel(levelToLoad); err != nil {
		return nil, fmt.Errorf("关卡加载失败: %w", err)
	}

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// restartable 可以重开的场景
type restartable interface {
	Restart() error
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(WindowWidth, WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if scene, ok := a.sceneManager.GetCurrentScene().(restartable); ok {
			if err := scene.Restart(); err != nil {
				log.Printf("[App] Warning: restart failed: %v", err)
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := a.sceneManager.NextLevel(); err != nil {
			log.Printf("[App] Warning: next level failed: %v", err)
		}
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时左右填充黑色，并使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
