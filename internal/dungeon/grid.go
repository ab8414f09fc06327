package dungeon

import "github.com/annel0/dungeon-gen/internal/vec"

// Grid три параллельных массива [y][x]: тип клетки, ориентация и код комнаты.
// Размер задаётся при создании и не меняется.
type Grid struct {
	width, height int
	tiles         [][]TileType
	orientation   [][]Direction
	roomCode      [][]int
}

// NewGrid создаёт сетку, заполненную пустотой без владельца
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:       width,
		height:      height,
		tiles:       make([][]TileType, height),
		orientation: make([][]Direction, height),
		roomCode:    make([][]int, height),
	}
	for y := 0; y < height; y++ {
		g.tiles[y] = make([]TileType, width)
		g.orientation[y] = make([]Direction, width)
		g.roomCode[y] = make([]int, width)
		for x := 0; x < width; x++ {
			g.tiles[y][x] = TileVoid
			g.orientation[y][x] = North
			g.roomCode[y][x] = NoRoom
		}
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds проверяет, лежит ли клетка внутри сетки
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) Tile(x, y int) TileType         { return g.tiles[y][x] }
func (g *Grid) Orientation(x, y int) Direction { return g.orientation[y][x] }
func (g *Grid) RoomCode(x, y int) int          { return g.roomCode[y][x] }

func (g *Grid) at(p vec.Vec2) TileType { return g.tiles[p.Y][p.X] }

func (g *Grid) set(x, y int, t TileType, dir Direction) {
	g.tiles[y][x] = t
	g.orientation[y][x] = dir
}

// Equal сравнивает содержимое двух сеток
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.tiles[y][x] != other.tiles[y][x] ||
				g.orientation[y][x] != other.orientation[y][x] ||
				g.roomCode[y][x] != other.roomCode[y][x] {
				return false
			}
		}
	}
	return true
}
