package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// parallelEpsilon 判定射线与线段平行的阈值
const parallelEpsilon = 1e-12

// ShapeKind 碰撞形状类型
type ShapeKind int

const (
	// ShapeSegment 线段（地形墙面）
	ShapeSegment ShapeKind = iota
	// ShapeBox 有向包围盒（传感器、白色光束段）
	ShapeBox
)

// Shape 二维碰撞形状
//
// 线段使用 A、B；有向盒使用 Center、HalfExtents、Angle（弧度，绕Z轴逆时针）。
type Shape struct {
	Kind        ShapeKind
	A, B        mgl64.Vec2
	Center      mgl64.Vec2
	HalfExtents mgl64.Vec2
	Angle       float64
}

// NewSegment 创建线段形状
func NewSegment(a, b mgl64.Vec2) Shape {
	return Shape{Kind: ShapeSegment, A: a, B: b}
}

// NewBox 创建有向盒形状
func NewBox(center, halfExtents mgl64.Vec2, angle float64) Shape {
	return Shape{Kind: ShapeBox, Center: center, HalfExtents: halfExtents, Angle: angle}
}

// NewAxisBox 创建轴对齐盒形状
func NewAxisBox(center mgl64.Vec2, halfWidth, halfHeight float64) Shape {
	return NewBox(center, mgl64.Vec2{halfWidth, halfHeight}, 0)
}

// cross 二维叉积
func cross(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// rotate 将向量逆时针旋转 angle 弧度
func rotate(v mgl64.Vec2, angle float64) mgl64.Vec2 {
	sin, cos := math.Sincos(angle)
	return mgl64.Vec2{v.X()*cos - v.Y()*sin, v.X()*sin + v.Y()*cos}
}

// CastRay 对单个形状做射线检测
//
// 射线为 origin + dir*t，t ∈ [0, maxToi]。返回的 toi 以 dir 的长度为单位。
// solid 为 true 时，起点位于盒内视为 toi=0 命中（法线为零向量）。
func (s Shape) CastRay(origin, dir mgl64.Vec2, maxToi float64, solid bool) (float64, mgl64.Vec2, bool) {
	switch s.Kind {
	case ShapeSegment:
		return s.castSegment(origin, dir, maxToi)
	case ShapeBox:
		return s.castBox(origin, dir, maxToi, solid)
	}
	return 0, mgl64.Vec2{}, false
}

func (s Shape) castSegment(origin, dir mgl64.Vec2, maxToi float64) (float64, mgl64.Vec2, bool) {
	edge := s.B.Sub(s.A)
	denom := cross(dir, edge)
	if math.Abs(denom) < parallelEpsilon {
		// 平行或共线：视为未命中
		return 0, mgl64.Vec2{}, false
	}

	toA := s.A.Sub(origin)
	t := cross(toA, edge) / denom
	u := cross(toA, dir) / denom
	if t < 0 || t > maxToi || u < 0 || u > 1 {
		return 0, mgl64.Vec2{}, false
	}

	normal := mgl64.Vec2{-edge.Y(), edge.X()}.Normalize()
	if normal.Dot(dir) > 0 {
		normal = normal.Mul(-1)
	}
	return t, normal, true
}

func (s Shape) castBox(origin, dir mgl64.Vec2, maxToi float64, solid bool) (float64, mgl64.Vec2, bool) {
	// 转换到盒的局部坐标系
	local := rotate(origin.Sub(s.Center), -s.Angle)
	localDir := rotate(dir, -s.Angle)
	half := s.HalfExtents

	inside := math.Abs(local.X()) <= half.X() && math.Abs(local.Y()) <= half.Y()
	if inside && solid {
		if maxToi < 0 {
			return 0, mgl64.Vec2{}, false
		}
		return 0, mgl64.Vec2{}, true
	}

	tEnter := math.Inf(-1)
	tExit := math.Inf(1)
	enterNormal := mgl64.Vec2{}
	exitNormal := mgl64.Vec2{}

	for axis := 0; axis < 2; axis++ {
		o, d, h := local[axis], localDir[axis], half[axis]
		if math.Abs(d) < parallelEpsilon {
			if o < -h || o > h {
				return 0, mgl64.Vec2{}, false
			}
			continue
		}

		t1 := (-h - o) / d
		t2 := (h - o) / d
		// 进入面的法线与射线方向相反
		sign := -1.0
		if d < 0 {
			sign = 1.0
		}
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		if t1 > tEnter {
			tEnter = t1
			enterNormal = mgl64.Vec2{}
			enterNormal[axis] = sign
		}
		if t2 < tExit {
			tExit = t2
			exitNormal = mgl64.Vec2{}
			exitNormal[axis] = -sign
		}
	}

	if tEnter > tExit || tExit < 0 {
		return 0, mgl64.Vec2{}, false
	}

	toi, normal := tEnter, enterNormal
	if inside {
		toi, normal = tExit, exitNormal
	}
	if toi < 0 || toi > maxToi {
		return 0, mgl64.Vec2{}, false
	}
	return toi, rotate(normal, s.Angle), true
}

// Vertices 返回形状的顶点（线段为两个端点，盒为四个角）
func (s Shape) Vertices() []mgl64.Vec2 {
	if s.Kind == ShapeSegment {
		return []mgl64.Vec2{s.A, s.B}
	}
	hx, hy := s.HalfExtents.X(), s.HalfExtents.Y()
	corners := [4]mgl64.Vec2{{-hx, -hy}, {hx, -hy}, {hx, hy}, {-hx, hy}}
	out := make([]mgl64.Vec2, 0, 4)
	for _, c := range corners {
		out = append(out, s.Center.Add(rotate(c, s.Angle)))
	}
	return out
}

// axes 返回分离轴测试需要的轴
func (s Shape) axes() []mgl64.Vec2 {
	if s.Kind == ShapeSegment {
		edge := s.B.Sub(s.A)
		if edge.Len() == 0 {
			return nil
		}
		return []mgl64.Vec2{{-edge.Y(), edge.X()}, edge}
	}
	return []mgl64.Vec2{rotate(mgl64.Vec2{1, 0}, s.Angle), rotate(mgl64.Vec2{0, 1}, s.Angle)}
}

func project(vertices []mgl64.Vec2, axis mgl64.Vec2) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vertices {
		p := v.Dot(axis)
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return lo, hi
}

// Intersects 分离轴测试：两个形状是否重叠（接触也算重叠）
func (s Shape) Intersects(other Shape) bool {
	va, vb := s.Vertices(), other.Vertices()
	for _, axis := range append(s.axes(), other.axes()...) {
		minA, maxA := project(va, axis)
		minB, maxB := project(vb, axis)
		if maxA < minB || maxB < minA {
			return false
		}
	}
	return true
}
