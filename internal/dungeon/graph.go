package dungeon

import (
	"fmt"
	"sort"

	"github.com/fogleman/delaunay"

	"github.com/annel0/dungeon-gen/internal/vec"
)

// vertexTolerance допуск при сопоставлении вершины триангуляции с центром комнаты
const vertexTolerance = 0.1

// Triangulator строит триангуляцию Делоне по набору точек.
// Возвращает тройки индексов во входном срезе.
type Triangulator interface {
	Triangulate(points []vec.Vec2Float) ([][3]int, error)
}

// DelaunayTriangulator реализация на github.com/fogleman/delaunay
type DelaunayTriangulator struct{}

func (DelaunayTriangulator) Triangulate(points []vec.Vec2Float) ([][3]int, error) {
	pts := make([]delaunay.Point, len(points))
	for i, p := range points {
		pts[i] = delaunay.Point{X: p.X, Y: p.Y}
	}

	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, err
	}

	triangles := make([][3]int, 0, len(tri.Triangles)/3)
	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		triangles = append(triangles, [3]int{tri.Triangles[i], tri.Triangles[i+1], tri.Triangles[i+2]})
	}
	return triangles, nil
}

// buildGraph связывает комнаты рёбрами триангуляции их центров.
// Для вырожденных наборов (меньше трёх точек или все на одной прямой) комнаты соединяются цепочкой.
func (b *builder) buildGraph() error {
	if len(b.rooms) < 2 {
		return nil
	}

	vertices := make([]vec.Vec2Float, len(b.rooms))
	for i, r := range b.rooms {
		vertices[i] = vec.FromVec2(r.Centre)
	}

	var triangles [][3]int
	if len(vertices) >= 3 {
		var err error
		triangles, err = b.triangulator.Triangulate(vertices)
		if err != nil {
			b.log.Debug("Триангуляция не удалась (%v), комнаты соединяются цепочкой", err)
			triangles = nil
		}
	}

	if len(triangles) == 0 {
		b.chainRooms()
	} else {
		for _, tri := range triangles {
			r1, err := b.roomAtVertex(vertices, tri[0])
			if err != nil {
				return err
			}
			r2, err := b.roomAtVertex(vertices, tri[1])
			if err != nil {
				return err
			}
			r3, err := b.roomAtVertex(vertices, tri[2])
			if err != nil {
				return err
			}

			r1.addNeighbour(r2)
			r1.addNeighbour(r3)
			r2.addNeighbour(r1)
			r2.addNeighbour(r3)
			r3.addNeighbour(r1)
			r3.addNeighbour(r2)
		}
	}

	edges := 0
	for _, r := range b.rooms {
		edges += len(r.nbors)
	}
	b.stats.CandidateEdges = edges / 2
	return nil
}

func (b *builder) roomAtVertex(vertices []vec.Vec2Float, idx int) (*Room, error) {
	if idx < 0 || idx >= len(vertices) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrUnresolvedVertex, idx, len(vertices))
	}
	return b.findRoomByPosition(vertices[idx])
}

// findRoomByPosition ищет комнату по координатам центра, а не по индексу вершины
func (b *builder) findRoomByPosition(p vec.Vec2Float) (*Room, error) {
	for _, r := range b.rooms {
		if vec.FromVec2(r.Centre).ApproxEqual(p, vertexTolerance) {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: (%.2f, %.2f)", ErrUnresolvedVertex, p.X, p.Y)
}

// chainRooms соединяет соседние по (X, Y) центры
func (b *builder) chainRooms() {
	ordered := make([]*Room, len(b.rooms))
	copy(ordered, b.rooms)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Centre.X != ordered[j].Centre.X {
			return ordered[i].Centre.X < ordered[j].Centre.X
		}
		return ordered[i].Centre.Y < ordered[j].Centre.Y
	})

	for i := 1; i < len(ordered); i++ {
		ordered[i-1].addNeighbour(ordered[i])
		ordered[i].addNeighbour(ordered[i-1])
	}
}
