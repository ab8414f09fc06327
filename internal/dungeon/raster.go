package dungeon

import (
	"github.com/annel0/dungeon-gen/internal/util"
	"github.com/annel0/dungeon-gen/internal/vec"
)

// Параметры факелов
const (
	maxTorchesPerRoom = 3
	torchHeight       = 3.14
	torchNoiseScale   = 0.37 // дробный шаг, в целых точках шум Перлина равен нулю
	torchThreshold    = 0.5
)

// fillGrid растеризует все комнаты в порядке ID
func (b *builder) fillGrid() {
	b.grid = NewGrid(b.params.Width, b.params.Height)
	for _, r := range b.rooms {
		if r.IsStairWell {
			b.grid.addStairWell(r)
		} else {
			b.grid.addRoom(r)
		}
	}
}

// addStairWell площадка, средняя ступень и крайняя ступень вдоль направления лестницы
func (g *Grid) addStairWell(r *Room) {
	dir := r.StairsDirection
	if r.StairType == TileStairsUp {
		dir = dir.Opposite()
	}

	minX, minY, maxX, maxY := r.Bounds()
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			g.roomCode[y][x] = r.ID
			g.orientation[y][x] = dir
		}
	}

	last := TileStairsDownDeep
	if r.StairType == TileStairsUp {
		last = TileStairsUpHigh
	}

	step := r.StairsDirection.Step()
	landing := r.Landing()
	middle := landing.Add(step)
	end := middle.Add(step)

	g.tiles[landing.Y][landing.X] = TileFloor
	g.tiles[middle.Y][middle.X] = r.StairType
	g.tiles[end.Y][end.X] = last
}

// addRoom пол внутри, стены по периметру, углы по четырём вершинам
func (g *Grid) addRoom(r *Room) {
	rx, ry, rw, rh := r.X, r.Y, r.Width, r.Height

	for x := rx; x <= rx+rw; x++ {
		for y := ry; y <= ry+rh; y++ {
			g.roomCode[y][x] = r.ID
		}
	}

	for x := 1; x < rw; x++ {
		for y := 1; y < rh; y++ {
			g.tiles[ry+y][rx+x] = TileFloor
		}
	}

	for x := 1; x < rw; x++ {
		g.placeWall(rx+x, ry, South)
		g.placeWall(rx+x, ry+rh, North)
	}
	for y := 1; y < rh; y++ {
		g.placeWall(rx, ry+y, West)
		g.placeWall(rx+rw, ry+y, East)
	}

	g.placeCorner(rx, ry, North)
	g.placeCorner(rx, ry+rh, East)
	g.placeCorner(rx+rw, ry, West)
	g.placeCorner(rx+rw, ry+rh, South)
}

// placeWall ставит стену. Пересечение с чужой перпендикулярной стеной или углом даёт Т-развилку.
func (g *Grid) placeWall(x, y int, dir Direction) {
	switch cur := g.tiles[y][x]; {
	case cur == TileVoid:
		g.set(x, y, TileWall, dir)
	case cur == TileWall && (g.orientation[y][x] == dir || g.orientation[y][x] == dir.Opposite()):
		// стены совпали
	default:
		g.set(x, y, TileWallTSplit, dir)
	}
}

// placeCorner ставит угол. Угол на стене - Т-развилка, угол на угле - перекрёсток.
func (g *Grid) placeCorner(x, y int, dir Direction) {
	switch g.tiles[y][x] {
	case TileVoid:
		g.set(x, y, TileWallCorner, dir)
	case TileWall:
		g.tiles[y][x] = TileWallTSplit
	case TileWallCorner:
		g.tiles[y][x] = TileWallCrossing
	}
}

// anchorTorches расставляет факелы по северным и западным стенам комнат.
// Шум берётся со сидом уровня, основной генератор не трогается.
func (b *builder) anchorTorches() {
	noise := util.NewNoise(b.params.LevelSeed(), torchNoiseScale)

	for _, r := range b.rooms {
		if r.IsStairWell {
			continue
		}
		r.Torches = nil

		minX, minY, maxX, maxY := r.Bounds()
	scan:
		for x := minX; x <= maxX; x++ {
			for y := minY; y <= maxY; y++ {
				if b.grid.tiles[y][x] != TileWall || b.grid.roomCode[y][x] != r.ID {
					continue
				}
				o := b.grid.orientation[y][x]
				if o != North && o != West {
					continue
				}
				if noise.At(x, y) <= torchThreshold {
					continue
				}

				cell := vec.Vec2{X: x, Y: y}
				r.Torches = append(r.Torches, TorchAnchor{
					Cell:   cell,
					Facing: o.Opposite(),
					Light:  vec.Lift(cell, torchHeight),
				})
				if len(r.Torches) == maxTorchesPerRoom {
					break scan
				}
			}
		}
	}
}
