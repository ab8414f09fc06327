package dungeon

import (
	"math/rand"
	"strings"
	"time"

	"github.com/annel0/dungeon-gen/internal/logging"
	"github.com/annel0/dungeon-gen/internal/vec"
)

// builder состояние одного прогона генерации
type builder struct {
	params       Params
	rng          *rand.Rand
	rooms        []*Room
	grid         *Grid
	triangulator Triangulator
	log          *logging.Logger
	stats        Stats
	portalsBelow []StairPortal
}

// DungeonMap готовый уровень подземелья. После New не изменяется и безопасен для чтения из нескольких горутин.
type DungeonMap struct {
	params       Params
	rooms        []*Room
	grid         *Grid
	portalsBelow []StairPortal
	stats        Stats
}

// New генерирует уровень. above - лестницы вниз уровня выше, для верхнего уровня пусто.
// Один и тот же набор аргументов всегда даёт одну и ту же карту.
func New(params Params, above []StairPortal, opts ...Option) (*DungeonMap, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	b := &builder{
		params:       params,
		triangulator: DelaunayTriangulator{},
		log:          logging.GetDungeonLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}

	start := time.Now()
	b.log.Debug("Генерация уровня %d (%dx%d), сид %d", params.Level, params.Width, params.Height, params.LevelSeed())

	if err := b.connectStairWells(above); err != nil {
		return nil, err
	}

	b.rng = rand.New(rand.NewSource(params.LevelSeed()))
	b.generateStairWells()
	b.placeRooms()

	if err := b.buildGraph(); err != nil {
		return nil, err
	}
	b.buildSpanningTree()
	b.addLoopEdges()

	b.fillGrid()
	b.makeCorridors()
	b.anchorTorches()

	for _, r := range b.rooms {
		r.nbors = nil
		r.distances = nil
	}

	b.log.Debug("Уровень %d: комнат %d, пролётов %d, рёбер %d+%d, коридоров %d (не найдено %d) за %v",
		params.Level, b.stats.RoomsPlaced, b.stats.StairWells, b.stats.TreeEdges, b.stats.LoopEdges,
		b.stats.Corridors, b.stats.CorridorFailures, time.Since(start))

	return &DungeonMap{
		params:       params,
		rooms:        b.rooms,
		grid:         b.grid,
		portalsBelow: b.portalsBelow,
		stats:        b.stats,
	}, nil
}

func (m *DungeonMap) Width() int     { return m.grid.Width() }
func (m *DungeonMap) Height() int    { return m.grid.Height() }
func (m *DungeonMap) Seed() int64    { return m.params.Seed }
func (m *DungeonMap) Level() int     { return m.params.Level }
func (m *DungeonMap) Params() Params { return m.params }
func (m *DungeonMap) Stats() Stats   { return m.stats }
func (m *DungeonMap) Grid() *Grid    { return m.grid }

func (m *DungeonMap) Tile(x, y int) TileType         { return m.grid.Tile(x, y) }
func (m *DungeonMap) Orientation(x, y int) Direction { return m.grid.Orientation(x, y) }
func (m *DungeonMap) RoomCode(x, y int) int          { return m.grid.RoomCode(x, y) }

// Rooms комнаты в порядке ID, сначала пролёты вверх, потом вниз, потом обычные
func (m *DungeonMap) Rooms() []*Room {
	out := make([]*Room, len(m.rooms))
	copy(out, m.rooms)
	return out
}

// Room возвращает комнату по ID или nil
func (m *DungeonMap) Room(id int) *Room {
	if id < 0 || id >= len(m.rooms) {
		return nil
	}
	return m.rooms[id]
}

// RoomAt комната, которой принадлежит клетка, или nil
func (m *DungeonMap) RoomAt(x, y int) *Room {
	if !m.grid.InBounds(x, y) {
		return nil
	}
	return m.Room(m.grid.RoomCode(x, y))
}

// PortalsBelow лестницы вниз этого уровня, входные данные для уровня ниже
func (m *DungeonMap) PortalsBelow() []StairPortal {
	out := make([]StairPortal, len(m.portalsBelow))
	copy(out, m.portalsBelow)
	return out
}

// StairsUp пролёты, ведущие на уровень выше
func (m *DungeonMap) StairsUp() []*Room {
	return m.stairWells(TileStairsUp)
}

// StairsDown пролёты, ведущие на уровень ниже
func (m *DungeonMap) StairsDown() []*Room {
	return m.stairWells(TileStairsDown)
}

func (m *DungeonMap) stairWells(t TileType) []*Room {
	var out []*Room
	for _, r := range m.rooms {
		if r.IsStairWell && r.StairType == t {
			out = append(out, r)
		}
	}
	return out
}

// Torches все факелы уровня
func (m *DungeonMap) Torches() []TorchAnchor {
	var out []TorchAnchor
	for _, r := range m.rooms {
		out = append(out, r.Torches...)
	}
	return out
}

// Walkable можно ли шагнуть из from в to (соседние клетки)
func (m *DungeonMap) Walkable(from, to vec.Vec2) bool {
	if !m.grid.InBounds(from.X, from.Y) || !m.grid.InBounds(to.X, to.Y) {
		return false
	}
	return Walkable(m.grid.at(to), m.grid.at(from))
}

// String ASCII дамп, север сверху: первая строка - максимальный Y
func (m *DungeonMap) String() string {
	var sb strings.Builder
	sb.Grow((m.Width() + 1) * m.Height())
	for y := m.Height() - 1; y >= 0; y-- {
		for x := 0; x < m.Width(); x++ {
			sb.WriteRune(m.grid.Tile(x, y).Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
