package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于创建指定ID的关卡场景，避免 game 包依赖 scenes 包
type SceneFactory func(levelID string) (Scene, error)

// SceneManager manages which scene is active.
// Only the active scene's Update and Draw are called.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
	levelOrder   []string // 关卡顺序，用于 NextLevel
}

// NewSceneManager creates a SceneManager with no active scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SetLevelOrder 设置关卡顺序
func (sm *SceneManager) SetLevelOrder(levels []string) {
	sm.levelOrder = append([]string(nil), levels...)
}

// SwitchTo changes the active scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentLevelID 返回当前关卡ID，当前场景不是关卡场景时返回空串
func (sm *SceneManager) CurrentLevelID() string {
	if ls, ok := sm.currentScene.(LevelScene); ok {
		return ls.LevelID()
	}
	return ""
}

// LoadLevel 加载指定ID的关卡场景
//
// 关卡创建失败时保留当前场景并返回错误。
func (sm *SceneManager) LoadLevel(levelID string) error {
	log.Printf("[SceneManager] 加载关卡: %s", levelID)

	if sm.sceneFactory == nil {
		return fmt.Errorf("scene factory is not set")
	}

	newScene, err := sm.sceneFactory(levelID)
	if err != nil {
		return fmt.Errorf("failed to create level %s: %w", levelID, err)
	}
	if newScene == nil {
		return fmt.Errorf("scene factory returned nil for level %s", levelID)
	}

	sm.SwitchTo(newScene)
	log.Printf("[SceneManager] 成功切换到关卡: %s", levelID)
	return nil
}

// NextLevel 加载关卡顺序中的下一关，已是最后一关时回到第一关
func (sm *SceneManager) NextLevel() error {
	if len(sm.levelOrder) == 0 {
		return fmt.Errorf("level order is empty")
	}

	current := sm.CurrentLevelID()
	next := sm.levelOrder[0]
	for i, id := range sm.levelOrder {
		if id == current {
			next = sm.levelOrder[(i+1)%len(sm.levelOrder)]
			break
		}
	}
	return sm.LoadLevel(next)
}

// Update updates the active scene; does nothing without one.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the active scene; does nothing without one.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
