package game

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockScene is a mock implementation of the LevelScene interface for testing.
type MockScene struct {
	level        string
	updateCalled bool
	deltaTime    float64
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {}

func (m *MockScene) LevelID() string { return m.level }

func mockFactory(created *[]string) SceneFactory {
	return func(levelID string) (Scene, error) {
		if levelID == "broken" {
			return nil, errors.New("lightColor needs to be an enum field on all buttons")
		}
		*created = append(*created, levelID)
		return &MockScene{level: levelID}, nil
	}
}

func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016) // 没有场景时不应 panic

	scene := &MockScene{}
	sm.SwitchTo(scene)
	sm.Update(0.016)

	assert.True(t, scene.updateCalled)
	assert.Equal(t, 0.016, scene.deltaTime)
	assert.Same(t, scene, sm.GetCurrentScene())
}

func TestSceneManagerLoadLevel(t *testing.T) {
	sm := NewSceneManager()
	require.Error(t, sm.LoadLevel("1"), "factory not set")

	var created []string
	sm.SetSceneFactory(mockFactory(&created))

	require.NoError(t, sm.LoadLevel("1"))
	assert.Equal(t, "1", sm.CurrentLevelID())

	// 创建失败时保留当前场景
	err := sm.LoadLevel("broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lightColor")
	assert.Equal(t, "1", sm.CurrentLevelID())
	assert.Equal(t, []string{"1"}, created)
}

func TestSceneManagerNextLevel(t *testing.T) {
	sm := NewSceneManager()
	var created []string
	sm.SetSceneFactory(mockFactory(&created))

	require.Error(t, sm.NextLevel(), "empty level order")

	sm.SetLevelOrder([]string{"1", "2"})
	require.NoError(t, sm.NextLevel())
	assert.Equal(t, "1", sm.CurrentLevelID(), "no current level starts from the first")

	require.NoError(t, sm.NextLevel())
	assert.Equal(t, "2", sm.CurrentLevelID())

	require.NoError(t, sm.NextLevel())
	assert.Equal(t, "1", sm.CurrentLevelID(), "wraps around")
}
