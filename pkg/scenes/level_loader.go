package scenes

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/decker502/prism/pkg/config"
	"github.com/decker502/prism/pkg/embedded"
	"github.com/decker502/prism/pkg/game"
	"github.com/decker502/prism/pkg/systems"
)

// 嵌入资源中的配置路径
const (
	LightPhysicsConfigPath = "data/light_physics.yaml"
	levelDir               = "data/levels"
	levelPrefix            = "level_"
)

// LevelPath 返回关卡ID对应的嵌入文件路径，如 "1" -> data/levels/level_1.yaml
func LevelPath(levelID string) string {
	return path.Join(levelDir, levelPrefix+levelID+".yaml")
}

// LoadEmbeddedLevel 从嵌入资源加载并验证关卡
func LoadEmbeddedLevel(levelID string) (*config.LevelConfig, error) {
	p := LevelPath(levelID)
	data, err := embedded.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", p, err)
	}
	level, err := config.ParseLevelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", p, err)
	}
	return level, nil
}

// LoadEmbeddedPhysicsConfig 从嵌入资源加载光线物理配置，文件不存在时使用默认值
func LoadEmbeddedPhysicsConfig() (*config.LightPhysicsConfig, error) {
	data, err := embedded.ReadFile(LightPhysicsConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.DefaultLightPhysicsConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", LightPhysicsConfigPath, err)
	}
	return config.ParseLightPhysicsConfig(data)
}

// ListEmbeddedLevels 返回嵌入资源中的所有关卡ID
//
// 数字ID按数值排序并排在前面，其余按字典序。
func ListEmbeddedLevels() ([]string, error) {
	matches, err := embedded.Glob(path.Join(levelDir, levelPrefix+"*.yaml"))
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(path.Base(m), ".yaml")
		ids = append(ids, strings.TrimPrefix(name, levelPrefix))
	}
	sort.Slice(ids, func(i, j int) bool {
		return levelIDLess(ids[i], ids[j])
	})
	return ids, nil
}

func levelIDLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil && na != nb:
		return na < nb
	case errA == nil && errB != nil:
		return true
	case errA != nil && errB == nil:
		return false
	}
	return a < b
}

// NewPuzzleSceneFactory 返回从嵌入资源创建关卡场景的工厂函数
func NewPuzzleSceneFactory(cfg *config.LightPhysicsConfig, audio systems.SoundPlayer) game.SceneFactory {
	return func(levelID string) (game.Scene, error) {
		level, err := LoadEmbeddedLevel(levelID)
		if err != nil {
			return nil, err
		}
		scene, err := NewPuzzleScene(level, cfg, audio)
		if err != nil {
			return nil, err
		}
		return scene, nil
	}
}
