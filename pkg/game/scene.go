package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene, such as a puzzle level.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update advances the scene by deltaTime seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// LevelScene 是一个可选接口，由承载关卡的场景实现
//
// SceneManager 通过它查询当前关卡ID，以便重开或前往下一关。
type LevelScene interface {
	Scene
	LevelID() string
}
