package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/dungeon-gen/internal/vec"
)

func TestGrid_PlaceWall(t *testing.T) {
	t.Run("в пустоту", func(t *testing.T) {
		g := NewGrid(5, 5)
		g.placeWall(2, 2, North)
		assert.Equal(t, TileWall, g.Tile(2, 2))
		assert.Equal(t, North, g.Orientation(2, 2))
	})

	t.Run("параллельная стена не меняет клетку", func(t *testing.T) {
		g := NewGrid(5, 5)
		g.placeWall(2, 2, North)
		g.placeWall(2, 2, South)
		assert.Equal(t, TileWall, g.Tile(2, 2))
		assert.Equal(t, North, g.Orientation(2, 2))
	})

	t.Run("перпендикулярная стена даёт Т-развилку", func(t *testing.T) {
		g := NewGrid(5, 5)
		g.placeWall(2, 2, North)
		g.placeWall(2, 2, West)
		assert.Equal(t, TileWallTSplit, g.Tile(2, 2))
		assert.Equal(t, West, g.Orientation(2, 2))
	})

	t.Run("стена на углу", func(t *testing.T) {
		g := NewGrid(5, 5)
		g.placeCorner(2, 2, East)
		g.placeWall(2, 2, South)
		assert.Equal(t, TileWallTSplit, g.Tile(2, 2))
		assert.Equal(t, South, g.Orientation(2, 2))
	})
}

func TestGrid_PlaceCorner(t *testing.T) {
	g := NewGrid(5, 5)

	g.placeCorner(1, 1, North)
	assert.Equal(t, TileWallCorner, g.Tile(1, 1))

	g.placeCorner(1, 1, South)
	assert.Equal(t, TileWallCrossing, g.Tile(1, 1))

	g.placeWall(3, 3, East)
	g.placeCorner(3, 3, North)
	assert.Equal(t, TileWallTSplit, g.Tile(3, 3))
	assert.Equal(t, East, g.Orientation(3, 3), "ориентация стены сохраняется")

	g.set(4, 4, TileFloor, North)
	g.placeCorner(4, 4, West)
	assert.Equal(t, TileFloor, g.Tile(4, 4))
}

func TestGrid_AddRoom(t *testing.T) {
	g := NewGrid(20, 10)
	r := newRoom(0, 3, 3, 4, 4)
	g.addRoom(r)

	for x := 3; x <= 7; x++ {
		for y := 3; y <= 7; y++ {
			assert.Equal(t, 0, g.RoomCode(x, y))
		}
	}
	assert.Equal(t, NoRoom, g.RoomCode(8, 3))

	assert.Equal(t, TileFloor, g.Tile(4, 4))
	assert.Equal(t, TileFloor, g.Tile(6, 6))

	assert.Equal(t, TileWall, g.Tile(5, 3))
	assert.Equal(t, South, g.Orientation(5, 3))
	assert.Equal(t, North, g.Orientation(5, 7))
	assert.Equal(t, West, g.Orientation(3, 5))
	assert.Equal(t, East, g.Orientation(7, 5))

	assert.Equal(t, TileWallCorner, g.Tile(3, 3))
	assert.Equal(t, North, g.Orientation(3, 3))
	assert.Equal(t, East, g.Orientation(3, 7))
	assert.Equal(t, West, g.Orientation(7, 3))
	assert.Equal(t, South, g.Orientation(7, 7))
}

func TestGrid_SharedWalls(t *testing.T) {
	g := NewGrid(20, 20)
	g.addRoom(newRoom(0, 3, 3, 4, 4))
	// Вторая комната выше и сдвинута: её нижняя стена совпадает с верхней первой,
	// левый нижний угол лежит на середине стены
	g.addRoom(newRoom(1, 5, 7, 4, 4))

	assert.Equal(t, TileWall, g.Tile(6, 7), "совпавшие стены остаются стеной")
	assert.Equal(t, TileWallTSplit, g.Tile(5, 7), "угол на стене")
	assert.Equal(t, TileWallTSplit, g.Tile(7, 7), "стена на углу")
	assert.Equal(t, 1, g.RoomCode(6, 7), "общая клетка принадлежит последней комнате")
}

func TestGrid_AddStairWell(t *testing.T) {
	t.Run("вниз на север", func(t *testing.T) {
		g := NewGrid(20, 20)
		s := newStairWell(2, vec.Vec2{X: 5, Y: 5}, 1, 3, North, TileStairsDown)
		g.addStairWell(s)

		assert.Equal(t, TileFloor, g.Tile(5, 5))
		assert.Equal(t, TileStairsDown, g.Tile(5, 6))
		assert.Equal(t, TileStairsDownDeep, g.Tile(5, 7))
		for y := 5; y <= 7; y++ {
			assert.Equal(t, 2, g.RoomCode(5, y))
			assert.Equal(t, North, g.Orientation(5, y))
		}
	})

	t.Run("вверх на запад", func(t *testing.T) {
		g := NewGrid(20, 20)
		s := newStairWell(0, vec.Vec2{X: 5, Y: 5}, 3, 1, West, TileStairsUp)
		g.addStairWell(s)

		assert.Equal(t, TileFloor, g.Tile(7, 5))
		assert.Equal(t, TileStairsUp, g.Tile(6, 5))
		assert.Equal(t, TileStairsUpHigh, g.Tile(5, 5))
		assert.Equal(t, East, g.Orientation(6, 5), "лестница вверх смотрит в обратную сторону")
	})
}

func TestGrid_FindPathBetweenRooms(t *testing.T) {
	g := NewGrid(20, 10)
	a := newRoom(0, 3, 3, 4, 4)
	b := newRoom(1, 13, 3, 4, 4)
	g.addRoom(a)
	g.addRoom(b)
	require.Equal(t, vec.Vec2{X: 5, Y: 5}, a.Centre)
	require.Equal(t, vec.Vec2{X: 15, Y: 5}, b.Centre)

	path, ok := g.carveCorridor(a.Centre, b.Centre)
	require.True(t, ok)
	require.Len(t, path, 11, "путь прямой")
	assert.Equal(t, a.Centre, path[0])
	assert.Equal(t, b.Centre, path[len(path)-1])

	assert.Equal(t, TileDoorway, g.Tile(7, 5))
	assert.Equal(t, TileDoorway, g.Tile(13, 5))
	for x := 8; x <= 12; x++ {
		assert.Equal(t, TileCorridor, g.Tile(x, 5))
		assert.Equal(t, NoRoom, g.RoomCode(x, 5))
	}
	assert.Equal(t, TileFloor, g.Tile(6, 5), "пол не меняется")
	assert.Equal(t, TileVoid, g.Tile(10, 6))
	assert.Equal(t, TileWall, g.Tile(7, 4))
}

func TestGrid_FindPathPrefersCorridors(t *testing.T) {
	g := NewGrid(10, 5)
	// Обходной коридор стоит 1 за шаг против 5 у пустоты
	for x := 0; x < 10; x++ {
		g.tiles[3][x] = TileCorridor
	}
	g.tiles[2][0] = TileCorridor
	g.tiles[2][9] = TileCorridor

	path, ok := g.FindPath(vec.Vec2{X: 0, Y: 1}, vec.Vec2{X: 9, Y: 1})
	require.True(t, ok)

	// Прямо: 9 шагов по пустоте = 45. Через коридор: 1 + 1 + 9 + 1 + 5 = 17.
	usesCorridor := false
	for _, p := range path {
		if p.Y == 3 {
			usesCorridor = true
		}
	}
	assert.True(t, usesCorridor, "поиск должен идти по дешёвому коридору")
}

func TestGrid_FindPathOutOfBounds(t *testing.T) {
	g := NewGrid(5, 5)
	_, ok := g.FindPath(vec.Vec2{X: -1, Y: 0}, vec.Vec2{X: 2, Y: 2})
	assert.False(t, ok)
}
