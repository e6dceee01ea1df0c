// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// LightColor 定义光线的颜色
// 每种颜色有固定的最大反射次数，并属于独立的碰撞分组
type LightColor int

const (
	// LightWhite 白光：唯一会生成可被传感器检测的光束段碰撞体的颜色
	LightWhite LightColor = iota
	// LightRed 红光
	LightRed
	// LightGreen 绿光
	LightGreen
	// LightBlue 蓝光
	LightBlue

	// LightColorCount 颜色数量，用于按颜色索引的定长表
	LightColorCount
)

// AllLightColors 按固定顺序列出所有颜色
var AllLightColors = [LightColorCount]LightColor{LightWhite, LightRed, LightGreen, LightBlue}

// NumBounces 返回该颜色光线的最大反射次数
func (c LightColor) NumBounces() int {
	switch c {
	case LightWhite:
		return 4
	case LightRed:
		return 2
	case LightGreen:
		return 3
	case LightBlue:
		return 0
	default:
		return 0
	}
}

// IsWhite 是否为白光
func (c LightColor) IsWhite() bool {
	return c == LightWhite
}

// Valid 是否为已定义的颜色
func (c LightColor) Valid() bool {
	return c >= LightWhite && c < LightColorCount
}

// String 返回颜色的字符串表示
func (c LightColor) String() string {
	switch c {
	case LightWhite:
		return "White"
	case LightRed:
		return "Red"
	case LightGreen:
		return "Green"
	case LightBlue:
		return "Blue"
	default:
		return "Unknown"
	}
}

// ParseLightColor 将关卡数据中的字符串解析为 LightColor（大小写不敏感）
func ParseLightColor(s string) (LightColor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white":
		return LightWhite, nil
	case "red":
		return LightRed, nil
	case "green":
		return LightGreen, nil
	case "blue":
		return LightBlue, nil
	default:
		return LightWhite, fmt.Errorf("unknown light color %q", s)
	}
}

// UnmarshalYAML 支持在 YAML 中直接书写颜色名称（如 "red"）
func (c *LightColor) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("light color must be a string: %w", err)
	}
	parsed, err := ParseLightColor(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML 输出小写颜色名称
func (c LightColor) MarshalYAML() (interface{}, error) {
	return strings.ToLower(c.String()), nil
}

// CrystalColor 标识传感器激活时要切换的水晶组
// 同一颜色下用 ID 区分不同的水晶组
type CrystalColor struct {
	Color LightColor
	ID    int
}

// String 返回如 "Red#2" 的表示
func (cc CrystalColor) String() string {
	return fmt.Sprintf("%s#%d", cc.Color, cc.ID)
}
