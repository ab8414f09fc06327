package api

import (
	"strings"

	"github.com/annel0/dungeon-gen/internal/dungeon"
)

// LevelView JSON-представление уровня
type LevelView struct {
	Seed         int64         `json:"seed"`
	Level        int           `json:"level"`
	Width        int           `json:"width"`
	Height       int           `json:"height"`
	Rows         []string      `json:"rows"` // первая строка - северный край (максимальный Y)
	Rooms        []RoomView    `json:"rooms"`
	PortalsBelow []PortalView  `json:"portals_below"`
	Stats        dungeon.Stats `json:"stats"`
	SeenRooms    int           `json:"seen_rooms"`
	SeenTiles    int           `json:"seen_tiles"`
}

// RoomView комната в ответе API
type RoomView struct {
	ID         int         `json:"id"`
	X          int         `json:"x"`
	Y          int         `json:"y"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Centre     [2]int      `json:"centre"`
	Stairs     string      `json:"stairs,omitempty"` // up, down
	Direction  string      `json:"direction,omitempty"`
	Neighbours []int       `json:"neighbours"`
	Torches    []TorchView `json:"torches,omitempty"`
}

// PortalView лестница вниз
type PortalView struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Direction string `json:"direction"`
}

// TorchView факел на стене
type TorchView struct {
	X      int        `json:"x"`
	Y      int        `json:"y"`
	Facing string     `json:"facing"`
	Light  [3]float64 `json:"light"`
}

func newLevelView(m *dungeon.DungeonMap) LevelView {
	v := LevelView{
		Seed:   m.Seed(),
		Level:  m.Level(),
		Width:  m.Width(),
		Height: m.Height(),
		Rows:   strings.Split(strings.TrimSuffix(m.String(), "\n"), "\n"),
		Stats:  m.Stats(),
	}

	for _, r := range m.Rooms() {
		rv := RoomView{
			ID:         r.ID,
			X:          r.X,
			Y:          r.Y,
			Width:      r.Width,
			Height:     r.Height,
			Centre:     [2]int{r.Centre.X, r.Centre.Y},
			Neighbours: make([]int, 0, len(r.CloseNeighbours)),
		}
		if r.IsStairWell {
			rv.Direction = r.StairsDirection.String()
			rv.Stairs = "down"
			if r.StairType == dungeon.TileStairsUp {
				rv.Stairs = "up"
			}
		}
		for _, nb := range r.CloseNeighbours {
			rv.Neighbours = append(rv.Neighbours, nb.ID)
		}
		for _, t := range r.Torches {
			rv.Torches = append(rv.Torches, TorchView{
				X:      t.Cell.X,
				Y:      t.Cell.Y,
				Facing: t.Facing.String(),
				Light:  [3]float64{t.Light.X, t.Light.Y, t.Light.Z},
			})
		}
		v.Rooms = append(v.Rooms, rv)
	}

	v.PortalsBelow = make([]PortalView, 0, len(m.PortalsBelow()))
	for _, p := range m.PortalsBelow() {
		v.PortalsBelow = append(v.PortalsBelow, PortalView{
			X:         p.Origin.X,
			Y:         p.Origin.Y,
			Width:     p.Width,
			Height:    p.Height,
			Direction: p.Direction.String(),
		})
	}
	return v
}
