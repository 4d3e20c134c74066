package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/cutlist/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// dxfTolerance is the distance below which two endpoints are joined and
// below which a bounding box dimension counts as degenerate.
const dxfTolerance = 0.01

type point struct {
	X, Y float64
}

type segment struct {
	start point
	end   point
}

// bounds is an axis-aligned bounding box.
type bounds struct {
	minX, minY, maxX, maxY float64
}

func boundsOf(pts []point) bounds {
	b := bounds{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, p := range pts {
		b.minX = math.Min(b.minX, p.X)
		b.minY = math.Min(b.minY, p.Y)
		b.maxX = math.Max(b.maxX, p.X)
		b.maxY = math.Max(b.maxY, p.Y)
	}
	return b
}

func (b bounds) width() float64  { return b.maxX - b.minX }
func (b bounds) height() float64 { return b.maxY - b.minY }

// ImportDXF turns every closed shape in a drawing into a rectangular cut
// sized to the shape's bounding box. Closed shapes are LWPOLYLINEs,
// CIRCLEs, and chains of LINEs and ARCs whose endpoints meet. Shapes with
// the same rounded size are merged into one cut with a quantity.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var shapes [][]point
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			pts := lwPolylinePoints(e)
			if len(pts) >= 3 {
				shapes = append(shapes, pts)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}
		case *entity.Circle:
			cx, cy, r := e.Center[0], e.Center[1], e.Radius
			shapes = append(shapes, []point{{cx - r, cy - r}, {cx + r, cy + r}, {cx - r, cy + r}})
		case *entity.Arc:
			pts := arcPoints(e, 32)
			for i := 0; i+1 < len(pts); i++ {
				segments = append(segments, segment{start: pts[i], end: pts[i+1]})
			}
		case *entity.Line:
			segments = append(segments, segment{
				start: point{e.Start[0], e.Start[1]},
				end:   point{e.End[0], e.End[1]},
			})
		}
	}

	shapes = append(shapes, chainSegments(segments, dxfTolerance)...)
	if len(shapes) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	result.Cuts, result.Warnings = cutsFromShapes(shapes, result.Warnings)
	if len(result.Cuts) == 0 {
		result.Errors = append(result.Errors, "No usable shapes found in DXF file")
	}
	return result
}

// cutsFromShapes sizes each shape by its bounding box, largest first, and
// groups equal sizes.
func cutsFromShapes(shapes [][]point, warnings []string) ([]model.Cut, []string) {
	boxes := make([]bounds, 0, len(shapes))
	for _, s := range shapes {
		b := boundsOf(s)
		if b.width() < dxfTolerance || b.height() < dxfTolerance {
			warnings = append(warnings, fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f mm)", b.width(), b.height()))
			continue
		}
		boxes = append(boxes, b)
	}

	sort.SliceStable(boxes, func(i, j int) bool {
		return boxes[i].width()*boxes[i].height() > boxes[j].width()*boxes[j].height()
	})

	var cuts []model.Cut
	index := make(map[[2]float64]int)
	for _, b := range boxes {
		w := math.Round(b.width()*100) / 100
		h := math.Round(b.height()*100) / 100
		key := [2]float64{w, h}
		if i, ok := index[key]; ok {
			cuts[i].Quantity++
			continue
		}
		index[key] = len(cuts)
		cuts = append(cuts, model.NewCut(fmt.Sprintf("DXF %gx%g", w, h), w, h, 1))
	}
	return cuts, warnings
}

// lwPolylinePoints returns the vertices of a polyline, with bulged
// segments sampled so arcs widen the bounding box.
func lwPolylinePoints(lw *entity.LwPolyline) []point {
	var pts []point
	for i, v := range lw.Vertices {
		current := point{v[0], v[1]}
		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) < 1e-9 {
			pts = append(pts, current)
			continue
		}
		n := lw.Vertices[(i+1)%len(lw.Vertices)]
		arc := bulgeArcPoints(current, point{n[0], n[1]}, bulge, 32)
		pts = append(pts, arc[:len(arc)-1]...)
	}
	return pts
}

// bulgeArcPoints samples the arc between p1 and p2. The bulge is the
// tangent of a quarter of the included angle; positive is counter-clockwise.
func bulgeArcPoints(p1, p2 point, bulge float64, numSegments int) []point {
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return []point{p1, p2}
	}

	sagitta := math.Abs(bulge) * chord / 2
	radius := (chord*chord/(4*sagitta) + sagitta) / 2

	perpX, perpY := -dy/chord, dx/chord
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	dist := radius - sagitta
	cx := mx + perpX*dist
	cy := my + perpY*dist

	start := math.Atan2(p1.Y-cy, p1.X-cx)
	end := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 && end > start {
		end -= 2 * math.Pi
	}
	if bulge > 0 && end < start {
		end += 2 * math.Pi
	}

	pts := make([]point, numSegments+1)
	for i := range pts {
		a := start + float64(i)/float64(numSegments)*(end-start)
		pts[i] = point{cx + radius*math.Cos(a), cy + radius*math.Sin(a)}
	}
	return pts
}

func arcPoints(a *entity.Arc, numSegments int) []point {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius
	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}

	pts := make([]point, numSegments+1)
	for i := range pts {
		angle := start + float64(i)/float64(numSegments)*(end-start)
		pts[i] = point{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	return pts
}

// chainSegments joins segments end to end and returns the chains that
// close on themselves. Open chains are dropped.
func chainSegments(segs []segment, tolerance float64) [][]point {
	used := make([]bool, len(segs))
	var shapes [][]point

	for startIdx := range segs {
		if used[startIdx] {
			continue
		}
		chain := []point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
				} else if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
				} else {
					continue
				}
				used[i] = true
				extended = true
				break
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			shapes = append(shapes, chain[:len(chain)-1])
		}
	}

	return shapes
}

func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}
