package physics

import "github.com/decker502/prism/pkg/types"

// Group 碰撞分组位掩码
type Group uint32

const (
	// GroupTerrain 地形（墙体、反射面）
	GroupTerrain Group = 1 << iota
	// GroupLightSensor 光敏传感器
	GroupLightSensor
	// GroupLightRay 所有非白色光线共享的分组
	GroupLightRay
	// GroupWhiteRay 白色光线及其光束段碰撞体
	GroupWhiteRay
	// GroupRedRay 红色光线
	GroupRedRay
	// GroupGreenRay 绿色光线
	GroupGreenRay
	// GroupBlueRay 蓝色光线
	GroupBlueRay

	// GroupAll 所有分组
	GroupAll Group = 0xFFFFFFFF
)

// CollisionGroups 描述碰撞体所属分组(Memberships)和它愿意与之碰撞的分组(Filter)
// 两个碰撞体仅当双方的 Memberships 都命中对方的 Filter 时才发生交互
type CollisionGroups struct {
	Memberships Group
	Filter      Group
}

// Interacts 判断两组碰撞分组是否允许交互
func (g CollisionGroups) Interacts(other CollisionGroups) bool {
	return g.Memberships&other.Filter != 0 && other.Memberships&g.Filter != 0
}

// 预定义的碰撞分组
var (
	// TerrainGroups 地形与所有对象交互
	TerrainGroups = CollisionGroups{Memberships: GroupTerrain, Filter: GroupAll}

	// SensorGroups 传感器可以被任意颜色的光线命中
	SensorGroups = CollisionGroups{
		Memberships: GroupLightSensor,
		Filter:      GroupLightRay | GroupWhiteRay | GroupBlueRay,
	}

	// WhiteSegmentGroups 白色光束段碰撞体：非白色光线会被它反射，白色光线穿过
	WhiteSegmentGroups = CollisionGroups{
		Memberships: GroupWhiteRay,
		Filter:      GroupTerrain | GroupLightSensor | GroupLightRay,
	}
)

// ColorGroup 返回颜色对应的专属分组
func ColorGroup(color types.LightColor) Group {
	switch color {
	case types.LightWhite:
		return GroupWhiteRay
	case types.LightRed:
		return GroupRedRay
	case types.LightGreen:
		return GroupGreenRay
	case types.LightBlue:
		return GroupBlueRay
	default:
		return GroupLightRay
	}
}

// RayGroups 返回某颜色光线投射时使用的碰撞分组
//
// 白光只与地形、传感器交互；其他颜色额外与白光光束段交互（白光"在上层"）。
func RayGroups(color types.LightColor) CollisionGroups {
	if color.IsWhite() {
		return CollisionGroups{
			Memberships: GroupWhiteRay,
			Filter:      GroupTerrain | GroupLightSensor,
		}
	}
	return CollisionGroups{
		Memberships: GroupLightRay | ColorGroup(color),
		Filter:      GroupTerrain | GroupLightSensor | GroupWhiteRay,
	}
}
