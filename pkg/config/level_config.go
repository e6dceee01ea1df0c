package config

import (
	"fmt"
	"os"

	"github.com/decker502/prism/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// 关卡实体标识符
const (
	// EntityButton 光敏按钮（传感器）
	EntityButton = "Button"
)

// 地形形状类型
const (
	TerrainSegment = "segment"
	TerrainBox     = "box"
)

// LevelConfig 关卡配置数据结构
// 定义了关卡的地形、光源和实体实例
type LevelConfig struct {
	ID           string              `yaml:"id"`           // 关卡ID，如 "1-1"
	Name         string              `yaml:"name"`         // 关卡名称
	Width        float64             `yaml:"width"`        // 关卡宽度（世界单位），用于渲染布局
	Height       float64             `yaml:"height"`       // 关卡高度（世界单位）
	Terrain      []TerrainConfig     `yaml:"terrain"`      // 地形（反射面）列表
	LightSources []LightSourceConfig `yaml:"lightSources"` // 光源列表
	Entities     []EntityInstance    `yaml:"entities"`     // 实体实例（传感器等）
}

// TerrainConfig 地形配置
// segment 使用 From/To；box 使用 Center/HalfExtents/Angle（角度制）
type TerrainConfig struct {
	Type        string     `yaml:"type"`
	From        mgl64.Vec2 `yaml:"from"`
	To          mgl64.Vec2 `yaml:"to"`
	Center      mgl64.Vec2 `yaml:"center"`
	HalfExtents mgl64.Vec2 `yaml:"halfExtents"`
	Angle       float64    `yaml:"angle"`
}

// LightSourceConfig 光源配置
type LightSourceConfig struct {
	Pos   mgl64.Vec2       `yaml:"pos"`   // 发射点
	Dir   mgl64.Vec2       `yaml:"dir"`   // 发射方向（加载时归一化）
	Color types.LightColor `yaml:"color"` // 光线颜色
}

// EntityInstance 关卡中的实体实例
type EntityInstance struct {
	Identifier string       `yaml:"identifier"` // 实体类型，如 "Button"
	Pos        mgl64.Vec2   `yaml:"pos"`        // 实体中心位置
	Fields     EntityFields `yaml:"fields"`     // 实体字段
}

// EntityFields 实体字段
// 使用指针区分"未填写"和零值
type EntityFields struct {
	LightColor        *types.LightColor `yaml:"lightColor"`        // Button 必填：要切换的水晶颜色
	ID                *int              `yaml:"id"`                // Button 必填：水晶组ID
	ActivationDelayMs *float64          `yaml:"activationDelayMs"` // 可选：激活延迟覆盖（毫秒）
}

// LoadLevelConfig 从YAML文件加载关卡配置
// 参数：
//
//	filepath - 关卡配置文件的路径（相对或绝对路径）
//
// 返回：
//
//	*LevelConfig - 解析并验证后的关卡配置对象
//	error - 如果文件读取、解析或验证失败，返回错误信息
func LoadLevelConfig(filepath string) (*LevelConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", filepath, err)
	}

	levelConfig, err := ParseLevelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("level config %s: %w", filepath, err)
	}
	return levelConfig, nil
}

// ParseLevelConfig 解析并验证关卡 YAML 数据
// 光源方向会被归一化
func ParseLevelConfig(data []byte) (*LevelConfig, error) {
	var levelConfig LevelConfig
	if err := yaml.Unmarshal(data, &levelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML: %w", err)
	}

	if err := levelConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level config: %w", err)
	}

	for i := range levelConfig.LightSources {
		levelConfig.LightSources[i].Dir = levelConfig.LightSources[i].Dir.Normalize()
	}

	return &levelConfig, nil
}

// Validate 验证关卡配置
//
// 关卡数据错误属于致命配置错误，必须在加载时报告，运行时不做恢复。
func (c *LevelConfig) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("level id is required")
	}

	for i, t := range c.Terrain {
		switch t.Type {
		case TerrainSegment:
			if t.From == t.To {
				return fmt.Errorf("terrain[%d]: segment has zero length", i)
			}
		case TerrainBox:
			if t.HalfExtents.X() <= 0 || t.HalfExtents.Y() <= 0 {
				return fmt.Errorf("terrain[%d]: box halfExtents must be positive, got %v", i, t.HalfExtents)
			}
		default:
			return fmt.Errorf("terrain[%d]: unknown type %q", i, t.Type)
		}
	}

	for i, src := range c.LightSources {
		if src.Dir.Len() == 0 {
			return fmt.Errorf("lightSources[%d]: dir must be non-zero", i)
		}
		if !src.Color.Valid() {
			return fmt.Errorf("lightSources[%d]: invalid color %d", i, src.Color)
		}
	}

	for i, e := range c.Entities {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entities[%d]: %w", i, err)
		}
	}

	return nil
}

// Validate 验证实体实例的必填字段
func (e *EntityInstance) Validate() error {
	switch e.Identifier {
	case EntityButton:
		if e.Fields.LightColor == nil {
			return fmt.Errorf("lightColor needs to be an enum field on all buttons")
		}
		if e.Fields.ID == nil {
			return fmt.Errorf("id needs to be an int field on all buttons")
		}
		if d := e.Fields.ActivationDelayMs; d != nil && *d <= 0 {
			return fmt.Errorf("activationDelayMs must be > 0, got %.1f", *d)
		}
		return nil
	case "":
		return fmt.Errorf("identifier is required")
	default:
		return fmt.Errorf("unknown entity identifier %q", e.Identifier)
	}
}

// IsSensor 实体是否带有传感器能力
func (e *EntityInstance) IsSensor() bool {
	return e.Identifier == EntityButton
}

// ActivationDelay 返回激活延迟（秒），未配置时返回 fallback
func (e *EntityInstance) ActivationDelay(fallback float64) float64 {
	if e.Fields.ActivationDelayMs == nil {
		return fallback
	}
	return *e.Fields.ActivationDelayMs / 1000.0
}

// ToggleColor 返回按钮要切换的水晶组
// 调用前必须先通过 Validate
func (e *EntityInstance) ToggleColor() types.CrystalColor {
	return types.CrystalColor{Color: *e.Fields.LightColor, ID: *e.Fields.ID}
}
