package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// 光线模拟默认参数
const (
	// DefaultLightSpeed 每帧光线传播距离的增量（世界单位）
	DefaultLightSpeed = 6.0
	// DefaultImpactEpsilon 小于该距离的命中视为自相交噪声
	DefaultImpactEpsilon = 0.01
	// DefaultSensorHalfExtent 传感器碰撞盒半边长
	DefaultSensorHalfExtent = 4.0
	// DefaultActivationDelayMs 传感器默认激活延迟（毫秒）
	DefaultActivationDelayMs = 300.0
	// DefaultWhiteSegmentThickness 白色光束段碰撞体厚度
	DefaultWhiteSegmentThickness = 1.0
)

// LightPhysicsConfig 光线物理配置
//
// 配置文件位置: data/light_physics.yaml
// 未出现的字段使用默认值。
type LightPhysicsConfig struct {
	// LightSpeed 每帧 TimeTraveled 的固定增量
	LightSpeed float64 `yaml:"lightSpeed"`

	// ImpactEpsilon 退化命中阈值
	ImpactEpsilon float64 `yaml:"impactEpsilon"`

	// SensorHalfExtent 传感器碰撞盒半边长
	SensorHalfExtent float64 `yaml:"sensorHalfExtent"`

	// DefaultActivationDelayMs 传感器未单独配置时的激活延迟（毫秒）
	DefaultActivationDelayMs float64 `yaml:"defaultActivationDelayMs"`

	// WhiteSegmentThickness 白色光束段碰撞盒的厚度
	WhiteSegmentThickness float64 `yaml:"whiteSegmentThickness"`
}

// DefaultLightPhysicsConfig 返回默认光线物理配置
func DefaultLightPhysicsConfig() *LightPhysicsConfig {
	return &LightPhysicsConfig{
		LightSpeed:               DefaultLightSpeed,
		ImpactEpsilon:            DefaultImpactEpsilon,
		SensorHalfExtent:         DefaultSensorHalfExtent,
		DefaultActivationDelayMs: DefaultActivationDelayMs,
		WhiteSegmentThickness:    DefaultWhiteSegmentThickness,
	}
}

// LoadLightPhysicsConfig 从文件加载光线物理配置
//
// 文件不存在时返回默认配置（不是错误）。
//
// 参数:
//   - path: 配置文件路径（如 "data/light_physics.yaml"）
//
// 返回:
//   - *LightPhysicsConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadLightPhysicsConfig(path string) (*LightPhysicsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultLightPhysicsConfig(), nil
		}
		return nil, fmt.Errorf("failed to read light physics config: %w", err)
	}
	return ParseLightPhysicsConfig(data)
}

// ParseLightPhysicsConfig 解析 YAML 数据，缺省字段填充默认值
func ParseLightPhysicsConfig(data []byte) (*LightPhysicsConfig, error) {
	config := DefaultLightPhysicsConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse light physics config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid light physics config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
func (c *LightPhysicsConfig) Validate() error {
	if c.LightSpeed <= 0 {
		return fmt.Errorf("lightSpeed must be > 0, got %.3f", c.LightSpeed)
	}
	if c.ImpactEpsilon < 0 {
		return fmt.Errorf("impactEpsilon must be >= 0, got %.3f", c.ImpactEpsilon)
	}
	if c.SensorHalfExtent <= 0 {
		return fmt.Errorf("sensorHalfExtent must be > 0, got %.3f", c.SensorHalfExtent)
	}
	if c.DefaultActivationDelayMs <= 0 {
		return fmt.Errorf("defaultActivationDelayMs must be > 0, got %.3f", c.DefaultActivationDelayMs)
	}
	if c.WhiteSegmentThickness <= 0 {
		return fmt.Errorf("whiteSegmentThickness must be > 0, got %.3f", c.WhiteSegmentThickness)
	}
	return nil
}

// DefaultActivationDelay 返回默认激活延迟（秒）
func (c *LightPhysicsConfig) DefaultActivationDelay() float64 {
	return c.DefaultActivationDelayMs / 1000.0
}
