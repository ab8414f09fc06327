package dungeon

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/dungeon-gen/internal/vec"
)

func generate(t *testing.T, seed int64, level int, above []StairPortal, opts ...Option) *DungeonMap {
	t.Helper()
	m, err := New(DefaultParams(seed, level, 30, 20), above, opts...)
	require.NoError(t, err)
	return m
}

func TestNew_Deterministic(t *testing.T) {
	a := generate(t, 1234, 0, nil)
	b := generate(t, 1234, 0, nil)

	assert.True(t, a.Grid().Equal(b.Grid()), "одинаковые параметры - одинаковая карта")
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, a.Stats(), b.Stats())
	assert.Equal(t, a.PortalsBelow(), b.PortalsBelow())
	require.Len(t, b.Rooms(), len(a.Rooms()))
	for i, r := range a.Rooms() {
		other := b.Room(i)
		assert.Equal(t, r.Origin(), other.Origin())
		assert.Equal(t, len(r.CloseNeighbours), len(other.CloseNeighbours))
	}
}

func TestNew_DifferentLevelsDiffer(t *testing.T) {
	a := generate(t, 1234, 0, nil)
	b := generate(t, 1234, 1, nil)
	assert.NotEqual(t, a.String(), b.String())
}

func TestNew_Invariants(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		m := generate(t, seed, int(seed%3), nil)
		rooms := m.Rooms()
		stats := m.Stats()

		require.NotEmpty(t, rooms, "seed %d", seed)
		downs := m.StairsDown()
		assert.True(t, len(downs) == 1 || len(downs) == 2, "seed %d: лестниц вниз %d", seed, len(downs))
		assert.Len(t, m.PortalsBelow(), len(downs))
		assert.Equal(t, len(rooms), stats.RoomsPlaced+stats.StairWells)

		for i, r := range rooms {
			assert.Equal(t, i, r.ID, "ID плотные и совпадают с индексом")

			for _, nb := range r.CloseNeighbours {
				assert.True(t, nb.IsCloseNeighbour(r), "seed %d: связь %d-%d несимметрична", seed, r.ID, nb.ID)
			}

			minX, minY, maxX, maxY := r.Bounds()
			assert.True(t, minX >= 0 && minY >= 0 && maxX < m.Width() && maxY < m.Height())

			for j := i + 1; j < len(rooms); j++ {
				o := rooms[j]
				assert.False(t, overlaps(r, o), "seed %d: комнаты %d и %d пересекаются", seed, r.ID, o.ID)
				assert.False(t, adjacent(r, o), "seed %d: комнаты %d и %d стоят вплотную", seed, r.ID, o.ID)
			}

			if !r.IsStairWell {
				for x := r.X + 1; x < r.X+r.Width; x++ {
					for y := r.Y + 1; y < r.Y+r.Height; y++ {
						assert.Equal(t, TileFloor, m.Tile(x, y))
						assert.Equal(t, r.ID, m.RoomCode(x, y))
					}
				}
				assert.LessOrEqual(t, len(r.Torches), maxTorchesPerRoom)
			}
		}

		assert.Equal(t, len(rooms)-1, stats.TreeEdges, "seed %d: остов покрывает все комнаты", seed)
		assert.Equal(t, stats.TreeEdges+stats.LoopEdges, stats.Corridors+stats.CorridorFailures)
		assert.LessOrEqual(t, stats.TreeEdges+stats.LoopEdges, stats.CandidateEdges)
	}
}

func TestNew_LoopFactorBounds(t *testing.T) {
	t.Run("без петель", func(t *testing.T) {
		p := DefaultParams(77, 0, 30, 20)
		p.LoopFactor = 0
		m, err := New(p, nil)
		require.NoError(t, err)

		links := 0
		for _, r := range m.Rooms() {
			links += len(r.CloseNeighbours)
		}
		assert.Equal(t, 2*(len(m.Rooms())-1), links, "только рёбра остова")
		assert.Zero(t, m.Stats().LoopEdges)
	})

	t.Run("все рёбра", func(t *testing.T) {
		p := DefaultParams(77, 0, 30, 20)
		p.LoopFactor = 1
		m, err := New(p, nil)
		require.NoError(t, err)

		s := m.Stats()
		assert.Equal(t, s.CandidateEdges, s.TreeEdges+s.LoopEdges)
	})
}

func TestNew_StairPortalPairing(t *testing.T) {
	above := []StairPortal{{Origin: vec.Vec2{X: 10, Y: 10}, Width: 1, Height: 3, Direction: North}}
	m := generate(t, 1234, 1, above)

	up := m.Room(0)
	require.NotNil(t, up)
	assert.True(t, up.IsStairWell)
	assert.Equal(t, TileStairsUp, up.StairType)
	assert.Equal(t, South, up.StairsDirection)
	assert.Equal(t, vec.Vec2{X: 10, Y: 9}, up.Landing())
	assert.Equal(t, vec.Vec2{X: 10, Y: 7}, up.Origin())

	assert.Equal(t, TileFloor, m.Tile(10, 9))
	assert.Equal(t, TileStairsUp, m.Tile(10, 8))
	assert.Equal(t, TileStairsUpHigh, m.Tile(10, 7))
	assert.Equal(t, North, m.Orientation(10, 8))
	assert.Equal(t, up, m.RoomAt(10, 8))
	assert.Len(t, m.StairsUp(), 1)
}

func TestNew_LevelChain(t *testing.T) {
	upper := generate(t, 42, 0, nil)
	portals := upper.PortalsBelow()
	lower := generate(t, 42, 1, portals)

	ups := lower.StairsUp()
	require.Len(t, ups, len(portals))
	for i, p := range portals {
		dir := p.Direction.Opposite()
		assert.Equal(t, dir, ups[i].StairsDirection)
		assert.Equal(t, p.Origin.Add(dir.Step()), ups[i].Landing())
		assert.NotEmpty(t, ups[i].CloseNeighbours, "лестница вверх подключена к графу")
	}
}

func TestNew_Errors(t *testing.T) {
	t.Run("маленькая карта", func(t *testing.T) {
		_, err := New(DefaultParams(1, 0, 8, 8), nil)
		assert.True(t, errors.Is(err, ErrInvalidParams))
	})

	t.Run("отрицательный уровень", func(t *testing.T) {
		_, err := New(DefaultParams(1, -1, 30, 20), nil)
		assert.ErrorIs(t, err, ErrInvalidParams)
	})

	t.Run("портал за краем", func(t *testing.T) {
		above := []StairPortal{{Origin: vec.Vec2{X: 0, Y: 0}, Width: 1, Height: 3, Direction: North}}
		_, err := New(DefaultParams(1, 1, 30, 20), above)
		assert.ErrorIs(t, err, ErrPortalOutOfBounds)
	})
}

type failingTriangulator struct{}

func (failingTriangulator) Triangulate([]vec.Vec2Float) ([][3]int, error) {
	return nil, errors.New("degenerate")
}

type brokenTriangulator struct{}

func (brokenTriangulator) Triangulate(points []vec.Vec2Float) ([][3]int, error) {
	return [][3]int{{0, 1, len(points)}}, nil
}

func TestNew_Triangulator(t *testing.T) {
	t.Run("цепочка при ошибке", func(t *testing.T) {
		m := generate(t, 5, 0, nil, WithTriangulator(failingTriangulator{}))
		n := len(m.Rooms())
		assert.Equal(t, n-1, m.Stats().CandidateEdges)
		assert.Equal(t, n-1, m.Stats().TreeEdges)
	})

	t.Run("неизвестная вершина", func(t *testing.T) {
		_, err := New(DefaultParams(5, 0, 30, 20), nil, WithTriangulator(brokenTriangulator{}))
		assert.ErrorIs(t, err, ErrUnresolvedVertex)
	})
}

func TestDungeonMap_String(t *testing.T) {
	m := generate(t, 9, 0, nil)
	lines := strings.Split(strings.TrimSuffix(m.String(), "\n"), "\n")
	require.Len(t, lines, m.Height())
	for _, l := range lines {
		assert.Equal(t, m.Width(), len([]rune(l)))
	}
	top := lines[0]
	assert.Equal(t, m.Tile(0, m.Height()-1).Rune(), []rune(top)[0], "первая строка - северный край")
}

func TestDungeonMap_Walkable(t *testing.T) {
	m := generate(t, 9, 0, nil)
	r := m.StairsDown()[0]
	landing := r.Landing()
	middle := landing.Add(r.StairsDirection.Step())
	deep := middle.Add(r.StairsDirection.Step())

	assert.True(t, m.Walkable(landing, middle))
	assert.True(t, m.Walkable(middle, deep))
	assert.False(t, m.Walkable(landing, deep))
	assert.False(t, m.Walkable(landing, vec.Vec2{X: -1, Y: 0}))
}

func TestFindRoomByPosition(t *testing.T) {
	b := &builder{rooms: []*Room{newRoom(0, 3, 3, 4, 4), newRoom(1, 13, 3, 4, 4)}}

	r, err := b.findRoomByPosition(vec.Vec2Float{X: 15.05, Y: 4.95})
	require.NoError(t, err)
	assert.Equal(t, 1, r.ID)

	_, err = b.findRoomByPosition(vec.Vec2Float{X: 10, Y: 10})
	assert.ErrorIs(t, err, ErrUnresolvedVertex)
}
