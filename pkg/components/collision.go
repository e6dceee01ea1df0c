package components

import "github.com/decker502/prism/pkg/physics"

// CollisionComponent 实体在碰撞世界中的形状和分组
// 与 physics.World 中同ID的碰撞体保持一致，供渲染和调试读取
type CollisionComponent struct {
	Shape  physics.Shape
	Groups physics.CollisionGroups
}

// TerrainComponent 标记地形实体（反射面）
type TerrainComponent struct{}
