package game

import "math"

const (
	CaseCount  = 10
	SlotCount  = 15
	OuterSlots = 10
	InnerSlots = 5

	CaseSize     = 84.0 // ケースの一辺（px）
	BoardPadding = 18.0

	minOuterRadius = 160.0
	maxOuterRadius = 300.0
	minInnerRadius = 70.0
	maxInnerRadius = 140.0
	innerRatio     = 0.42
)

// Point は盤面上の座標（盤面左上が原点）
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub は p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// DistSq は2点間のユークリッド距離の2乗
func (p Point) DistSq(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// RingKind は外周か内周か
type RingKind string

const (
	RingOuter RingKind = "outer"
	RingInner RingKind = "inner"
)

// Slot はケースを置ける固定位置。IDは 1..10 が外周、11..15 が内周
type Slot struct {
	ID     int      `json:"id"`
	Center Point    `json:"center"`
	Kind   RingKind `json:"kind"`
}

// TopLeft はこのスロットに置いたケースの左上座標
func (s Slot) TopLeft() Point {
	return Point{X: s.Center.X - CaseSize/2, Y: s.Center.Y - CaseSize/2}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// RingRadii は盤面サイズから外周と内周の半径を求める
func RingRadii(width, height float64) (outer, inner float64) {
	maxR := math.Min(width, height)/2 - CaseSize/2 - BoardPadding
	outer = clamp(maxR, minOuterRadius, maxOuterRadius)
	inner = clamp(outer*innerRatio, minInnerRadius, maxInnerRadius)
	return outer, inner
}

// ComputeSlots returns the 15 slot centers for a board of the given size.
// Slots are ordered canonically: outer 1..10 then inner 11..15, each ring
// starting at the top and going clockwise. The result depends only on the
// board size.
func ComputeSlots(width, height float64) [SlotCount]Slot {
	var slots [SlotCount]Slot

	cx := width / 2
	cy := height / 2
	outerR, innerR := RingRadii(width, height)

	for i := 0; i < OuterSlots; i++ {
		angle := -math.Pi/2 + float64(i)*(2*math.Pi/OuterSlots)
		slots[i] = Slot{
			ID:     i + 1,
			Center: Point{X: cx + outerR*math.Cos(angle), Y: cy + outerR*math.Sin(angle)},
			Kind:   RingOuter,
		}
	}

	for i := 0; i < InnerSlots; i++ {
		angle := -math.Pi/2 + float64(i)*(2*math.Pi/InnerSlots)
		slots[OuterSlots+i] = Slot{
			ID:     OuterSlots + i + 1,
			Center: Point{X: cx + innerR*math.Cos(angle), Y: cy + innerR*math.Sin(angle)},
			Kind:   RingInner,
		}
	}

	return slots
}
