package dungeon

import "github.com/annel0/dungeon-gen/internal/vec"

// TileType тип клетки статической архитектуры уровня
type TileType uint8

const (
	TileVoid TileType = iota
	TileFloor
	TileCorridor
	TileWall
	TileDoorway
	TileWallCorner
	TileWallTSplit
	TileWallCrossing
	TileStairsDown     // верхняя ступень лестницы вниз
	TileStairsDownDeep // нижняя ступень лестницы вниз
	TileStairsUp       // нижняя ступень лестницы вверх
	TileStairsUpHigh   // верхняя ступень лестницы вверх
)

var tileNames = [...]string{
	TileVoid:           "void",
	TileFloor:          "floor",
	TileCorridor:       "corridor",
	TileWall:           "wall",
	TileDoorway:        "doorway",
	TileWallCorner:     "wall_corner",
	TileWallTSplit:     "wall_t_split",
	TileWallCrossing:   "wall_crossing",
	TileStairsDown:     "stairs_down",
	TileStairsDownDeep: "stairs_down_deep",
	TileStairsUp:       "stairs_up",
	TileStairsUpHigh:   "stairs_up_high",
}

// Символы для ASCII дампа карты
var tileRunes = [...]rune{
	TileVoid:           ' ',
	TileFloor:          '.',
	TileCorridor:       '#',
	TileWall:           '=',
	TileDoorway:        '+',
	TileWallCorner:     'o',
	TileWallTSplit:     'T',
	TileWallCrossing:   'X',
	TileStairsDown:     '>',
	TileStairsDownDeep: 'v',
	TileStairsUp:       '<',
	TileStairsUpHigh:   '^',
}

func (t TileType) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return "unknown"
}

// Rune возвращает символ клетки для текстового вывода
func (t TileType) Rune() rune {
	if int(t) < len(tileRunes) {
		return tileRunes[t]
	}
	return '?'
}

// IsStairs true для любой ступени лестницы
func (t TileType) IsStairs() bool {
	return t >= TileStairsDown && t <= TileStairsUpHigh
}

// Walkable сообщает, можно ли войти в клетку cell из клетки from.
// Крайние ступени доступны только со своей средней ступени.
func Walkable(cell, from TileType) bool {
	switch cell {
	case TileFloor, TileCorridor, TileDoorway, TileStairsDown, TileStairsUp:
		return true
	case TileStairsUpHigh:
		return from == TileStairsUp
	case TileStairsDownDeep:
		return from == TileStairsDown
	}
	return false
}

// Droppable сообщает, можно ли положить предмет на клетку
func Droppable(cell TileType) bool {
	switch cell {
	case TileFloor, TileCorridor, TileDoorway, TileStairsDown, TileStairsUp:
		return true
	}
	return false
}

// HasFloor true для клеток с плиткой пола
func HasFloor(cell TileType) bool {
	switch cell {
	case TileFloor, TileCorridor, TileDoorway:
		return true
	}
	return false
}

// Direction одно из четырёх сторон света. Север смотрит в +Y, восток в +X.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions все направления в порядке N, E, S, W
var Directions = [4]Direction{North, East, South, West}

var directionSteps = [4]vec.Vec2{
	North: {X: 0, Y: 1},
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: -1},
	West:  {X: -1, Y: 0},
}

// Opposite возвращает противоположное направление
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Step возвращает смещение на одну клетку в направлении d
func (d Direction) Step() vec.Vec2 {
	return directionSteps[d%4]
}

// Horizontal true для востока и запада
func (d Direction) Horizontal() bool {
	return d == East || d == West
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}
