package dungeon

import "github.com/annel0/dungeon-gen/internal/vec"

// NoRoom код клетки, не принадлежащей ни одной комнате (коридор, пустота)
const NoRoom = -1

// Room прямоугольная комната или лестничный пролёт.
// Поля заполняются во время генерации и после неё не меняются.
type Room struct {
	ID                  int // уникален, совпадает с индексом в DungeonMap.Rooms()
	X, Y, Width, Height int
	Centre              vec.Vec2 // узел подключения коридоров; у пролёта это площадка

	IsStairWell     bool
	StairType       TileType // TileStairsUp или TileStairsDown, только для пролёта
	StairsDirection Direction

	// CloseNeighbours комнаты, соединённые коридором (остов + петли), симметрично
	CloseNeighbours []*Room
	// Torches точки крепления факелов для освещения
	Torches []TorchAnchor

	// Кандидаты из триангуляции и расстояния до них, нужны только при построении графа
	nbors     []*Room
	distances []float64
}

// StairPortal копия геометрии лестницы вниз, передаётся уровню ниже
type StairPortal struct {
	Origin        vec.Vec2
	Width, Height int
	Direction     Direction
}

// TorchAnchor место факела на стене комнаты
type TorchAnchor struct {
	Cell   vec.Vec2      // клетка стены
	Facing Direction     // куда смотрит факел (внутрь комнаты)
	Light  vec.Vec3Float // позиция источника света
}

func newRoom(id, x, y, w, h int) *Room {
	return &Room{
		ID:     id,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		Centre: vec.Vec2{X: x + w/2, Y: y + h/2},
	}
}

// stairWellSize 3x1 для восток/запад, 1x3 для север/юг
func stairWellSize(dir Direction) (w, h int) {
	if dir.Horizontal() {
		return 3, 1
	}
	return 1, 3
}

// landingOffset смещение площадки от угла пролёта.
// Север и восток - сам угол, юг и запад - через две клетки по оси лестницы.
func landingOffset(dir Direction) vec.Vec2 {
	switch dir {
	case South:
		return vec.Vec2{X: 0, Y: 2}
	case West:
		return vec.Vec2{X: 2, Y: 0}
	default:
		return vec.Vec2{}
	}
}

func newStairWell(id int, origin vec.Vec2, w, h int, dir Direction, stairType TileType) *Room {
	return &Room{
		ID:              id,
		X:               origin.X,
		Y:               origin.Y,
		Width:           w,
		Height:          h,
		Centre:          origin.Add(landingOffset(dir)),
		IsStairWell:     true,
		StairType:       stairType,
		StairsDirection: dir,
	}
}

// Origin левый нижний угол комнаты
func (r *Room) Origin() vec.Vec2 {
	return vec.Vec2{X: r.X, Y: r.Y}
}

// Landing площадка пролёта (для обычной комнаты - центр)
func (r *Room) Landing() vec.Vec2 {
	return r.Centre
}

// Bounds включительные границы занимаемых клеток.
// Обычная комната занимает (Width+1)x(Height+1) вместе со стенами, пролёт - ровно WidthxHeight.
func (r *Room) Bounds() (minX, minY, maxX, maxY int) {
	if r.IsStairWell {
		return r.X, r.Y, r.X + r.Width - 1, r.Y + r.Height - 1
	}
	return r.X, r.Y, r.X + r.Width, r.Y + r.Height
}

// Contains проверяет, попадает ли клетка в комнату вместе со стенами
func (r *Room) Contains(p vec.Vec2) bool {
	minX, minY, maxX, maxY := r.Bounds()
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// Portal возвращает описание пролёта для следующего уровня
func (r *Room) Portal() StairPortal {
	return StairPortal{
		Origin:    r.Origin(),
		Width:     r.Width,
		Height:    r.Height,
		Direction: r.StairsDirection,
	}
}

// overlaps проверяет пересечение комнат.
// Две обычные комнаты могут делить одну граничную клетку, чтобы стены совпали.
// С пролётом общих клеток быть не может.
func overlaps(a, b *Room) bool {
	if a.IsStairWell || b.IsStairWell {
		s, r := a, b
		if !s.IsStairWell {
			s, r = b, a
		}
		return s.X <= r.X+r.Width && s.X+s.Width >= r.X &&
			s.Y <= r.Y+r.Height && s.Y+s.Height >= r.Y
	}
	return a.X < b.X+b.Width && a.X+a.Width > b.X &&
		a.Y < b.Y+b.Height && a.Y+a.Height > b.Y
}

// adjacent ловит две отдельные стены вплотную друг к другу: выглядит странно,
// такие комнаты должны делить общую стену.
func adjacent(a, b *Room) bool {
	if a.IsStairWell || b.IsStairWell {
		return false
	}
	spanY := a.Y <= b.Y+b.Height && b.Y <= a.Y+a.Height
	spanX := a.X <= b.X+b.Width && b.X <= a.X+a.Width

	if spanY && (a.X+a.Width+1 == b.X || b.X+b.Width+1 == a.X) {
		return true
	}
	if spanX && (a.Y+a.Height+1 == b.Y || b.Y+b.Height+1 == a.Y) {
		return true
	}
	return false
}

// addNeighbour добавляет кандидата из триангуляции, дубликаты игнорируются
func (r *Room) addNeighbour(n *Room) {
	for _, existing := range r.nbors {
		if existing == n {
			return
		}
	}
	r.nbors = append(r.nbors, n)
	r.distances = append(r.distances, r.Centre.DistanceTo(n.Centre))
}

func (r *Room) addCloseNeighbour(n *Room) {
	r.CloseNeighbours = append(r.CloseNeighbours, n)
}

// IsCloseNeighbour true, если комнаты соединены коридором
func (r *Room) IsCloseNeighbour(n *Room) bool {
	for _, c := range r.CloseNeighbours {
		if c == n {
			return true
		}
	}
	return false
}

// link соединяет две комнаты в обе стороны
func link(a, b *Room) {
	a.addCloseNeighbour(b)
	b.addCloseNeighbour(a)
}
