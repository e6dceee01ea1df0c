package systems

import (
	"image/color"

	"github.com/decker502/prism/pkg/components"
	"github.com/decker502/prism/pkg/ecs"
	"github.com/decker502/prism/pkg/physics"
	"github.com/decker502/prism/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 渲染颜色
var (
	terrainColor       = color.RGBA{R: 90, G: 90, B: 110, A: 255}
	sensorIdleColor    = color.RGBA{R: 70, G: 70, B: 70, A: 255}
	sensorLitColor     = color.RGBA{R: 255, G: 230, B: 120, A: 255}
	sensorProgressFill = color.RGBA{R: 255, G: 255, B: 255, A: 180}
)

// BeamColor 返回光线颜色对应的绘制颜色
func BeamColor(c types.LightColor) color.RGBA {
	switch c {
	case types.LightRed:
		return color.RGBA{R: 255, G: 70, B: 70, A: 255}
	case types.LightGreen:
		return color.RGBA{R: 80, G: 255, B: 110, A: 255}
	case types.LightBlue:
		return color.RGBA{R: 80, G: 140, B: 255, A: 255}
	default:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
}

// LightRenderSystem 绘制地形、传感器和本帧的活动光束段
// 只读取光束段缓存中的活动句柄，不读取整个缓存
type LightRenderSystem struct {
	em    *ecs.EntityManager
	cache *LightSegmentCache
	scale float64 // 世界单位到屏幕像素的缩放
}

// NewLightRenderSystem 创建渲染系统
func NewLightRenderSystem(em *ecs.EntityManager, cache *LightSegmentCache, scale float64) *LightRenderSystem {
	if scale <= 0 {
		scale = 1
	}
	return &LightRenderSystem{em: em, cache: cache, scale: scale}
}

// SetScale 设置缩放
func (s *LightRenderSystem) SetScale(scale float64) {
	if scale > 0 {
		s.scale = scale
	}
}

// Draw 绘制
func (s *LightRenderSystem) Draw(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.TerrainComponent, *components.CollisionComponent](s.em) {
		col, _ := ecs.GetComponent[*components.CollisionComponent](s.em, id)
		s.strokeShape(screen, col.Shape, 2, terrainColor)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.LightSensorComponent, *components.CollisionComponent](s.em) {
		sensor, _ := ecs.GetComponent[*components.LightSensorComponent](s.em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](s.em, id)
		s.drawSensor(screen, sensor, col.Shape)
	}

	for _, c := range types.AllLightColors {
		clr := BeamColor(c)
		for _, id := range s.cache.LiveHandles(c) {
			seg, ok := ecs.GetComponent[*components.LightSegmentComponent](s.em, id)
			if !ok {
				continue
			}
			s.line(screen, seg.Start, seg.End, 1.5, clr)
		}
	}
}

func (s *LightRenderSystem) drawSensor(screen *ebiten.Image, sensor *components.LightSensorComponent, shape physics.Shape) {
	clr := sensorIdleColor
	if sensor.IsHit() {
		clr = sensorLitColor
	}

	x := float32((shape.Center.X() - shape.HalfExtents.X()) * s.scale)
	y := float32((shape.Center.Y() - shape.HalfExtents.Y()) * s.scale)
	w := float32(shape.HalfExtents.X() * 2 * s.scale)
	h := float32(shape.HalfExtents.Y() * 2 * s.scale)
	vector.DrawFilledRect(screen, x, y, w, h, clr, false)

	// 激活进度条
	timer := sensor.ActivationTimer
	if timer.TargetTime > 0 && timer.CurrentTime > 0 {
		progress := float32(timer.CurrentTime / timer.TargetTime)
		vector.DrawFilledRect(screen, x, y+h+1, w*progress, 2, sensorProgressFill, false)
	}
	vector.StrokeRect(screen, x, y, w, h, 1, BeamColor(sensor.ToggleColor.Color), false)
}

func (s *LightRenderSystem) strokeShape(screen *ebiten.Image, shape physics.Shape, width float32, clr color.Color) {
	verts := shape.Vertices()
	if len(verts) == 2 {
		s.line(screen, verts[0], verts[1], width, clr)
		return
	}
	for i := range verts {
		s.line(screen, verts[i], verts[(i+1)%len(verts)], width, clr)
	}
}

func (s *LightRenderSystem) line(screen *ebiten.Image, a, b mgl64.Vec2, width float32, clr color.Color) {
	vector.StrokeLine(screen,
		float32(a.X()*s.scale), float32(a.Y()*s.scale),
		float32(b.X()*s.scale), float32(b.Y()*s.scale),
		width, clr, true)
}
