package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/dungeon-gen/internal/vec"
)

func TestDirection_OppositeAndStep(t *testing.T) {
	for _, d := range Directions {
		assert.Equal(t, d, d.Opposite().Opposite())
		back := d.Step().Add(d.Opposite().Step())
		assert.Equal(t, vec.Vec2{}, back, "шаг туда и обратно для %s", d)
	}
	assert.Equal(t, vec.Vec2{X: 0, Y: 1}, North.Step())
	assert.Equal(t, vec.Vec2{X: -1, Y: 0}, West.Step())
	assert.True(t, East.Horizontal())
	assert.False(t, South.Horizontal())
}

func TestTilePredicates(t *testing.T) {
	t.Run("Walkable", func(t *testing.T) {
		assert.True(t, Walkable(TileFloor, TileCorridor))
		assert.True(t, Walkable(TileDoorway, TileFloor))
		assert.False(t, Walkable(TileWall, TileFloor))
		assert.False(t, Walkable(TileVoid, TileFloor))
		assert.True(t, Walkable(TileStairsUpHigh, TileStairsUp))
		assert.False(t, Walkable(TileStairsUpHigh, TileFloor), "верхняя ступень только со средней")
		assert.True(t, Walkable(TileStairsDownDeep, TileStairsDown))
		assert.False(t, Walkable(TileStairsDownDeep, TileFloor))
	})

	t.Run("Droppable", func(t *testing.T) {
		assert.True(t, Droppable(TileCorridor))
		assert.False(t, Droppable(TileStairsDownDeep))
		assert.False(t, Droppable(TileWallCorner))
	})

	t.Run("HasFloor", func(t *testing.T) {
		assert.True(t, HasFloor(TileDoorway))
		assert.False(t, HasFloor(TileStairsDown))
	})

	t.Run("Names", func(t *testing.T) {
		assert.Equal(t, "wall_t_split", TileWallTSplit.String())
		assert.Equal(t, '#', TileCorridor.Rune())
		assert.Equal(t, "unknown", TileType(200).String())
		assert.True(t, TileStairsUpHigh.IsStairs())
		assert.False(t, TileDoorway.IsStairs())
	})
}
