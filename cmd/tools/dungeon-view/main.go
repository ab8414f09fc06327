package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/annel0/dungeon-gen/internal/config"
	"github.com/annel0/dungeon-gen/internal/dungeon"
	"github.com/annel0/dungeon-gen/internal/world"
)

// Viewer терминальный просмотрщик уровней
type Viewer struct {
	screen  tcell.Screen
	manager *world.Manager
	level   int
	dm      *dungeon.DungeonMap
	view    viewport
	status  string
}

func NewViewer(manager *world.Manager) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault)

	v := &Viewer{screen: screen, manager: manager}
	if err := v.enter(0); err != nil {
		screen.Fini()
		return nil, err
	}
	return v, nil
}

func (v *Viewer) enter(level int) error {
	dm, err := v.manager.Enter(context.Background(), level)
	if err != nil {
		v.status = err.Error()
		return err
	}
	v.level = level
	v.dm = dm
	v.view.reset(dm.Width(), dm.Height())
	v.status = ""
	return nil
}

func tileStyle(t dungeon.TileType) tcell.Style {
	switch t {
	case dungeon.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case dungeon.TileCorridor:
		return tcell.StyleDefault.Foreground(tcell.ColorOlive)
	case dungeon.TileDoorway:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case dungeon.TileStairsDown, dungeon.TileStairsDownDeep:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case dungeon.TileStairsUp, dungeon.TileStairsUpHigh:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
}

func (v *Viewer) draw() {
	v.screen.Clear()
	sw, sh := v.screen.Size()
	v.view.resize(sw, sh-1)

	// Север сверху: экранная строка 0 - максимальный видимый Y
	for sy := 0; sy < v.view.height && sy < sh-1; sy++ {
		y := v.dm.Height() - 1 - (v.view.y + sy)
		if y < 0 {
			break
		}
		for sx := 0; sx < v.view.width && sx < sw; sx++ {
			x := v.view.x + sx
			if x >= v.dm.Width() {
				break
			}
			t := v.dm.Tile(x, y)
			v.screen.SetContent(sx, sy, t.Rune(), nil, tileStyle(t))
		}
	}

	for _, torch := range v.dm.Torches() {
		sx := torch.Cell.X - v.view.x
		sy := v.dm.Height() - 1 - torch.Cell.Y - v.view.y
		if sx >= 0 && sx < sw && sy >= 0 && sy < sh-1 {
			v.screen.SetContent(sx, sy, '*', nil, tcell.StyleDefault.Foreground(tcell.ColorOrange))
		}
	}

	status := fmt.Sprintf(" seed %d  level %d/%d  %dx%d  rooms %d  [<] up [>] down [arrows] scroll [q] quit  %s",
		v.manager.Seed(), v.level, v.manager.MaxLevel(), v.dm.Width(), v.dm.Height(), len(v.dm.Rooms()), v.status)
	for i, r := range []rune(status) {
		if i >= sw {
			break
		}
		v.screen.SetContent(i, sh-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	v.screen.Show()
}

// handle возвращает false для выхода
func (v *Viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			v.view.scroll(0, -1)
		case tcell.KeyDown:
			v.view.scroll(0, 1)
		case tcell.KeyLeft:
			v.view.scroll(-1, 0)
		case tcell.KeyRight:
			v.view.scroll(1, 0)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case '>':
				_ = v.enter(v.level + 1)
			case '<':
				if v.level > 0 {
					_ = v.enter(v.level - 1)
				}
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) run() {
	defer v.screen.Fini()
	for {
		v.draw()
		if !v.handle(v.screen.PollEvent()) {
			return
		}
	}
}

func main() {
	configPath := flag.String("config", "", "YAML config path")
	seed := flag.Int64("seed", 0, "World seed (0 - from config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.Generator.Seed = *seed
	}

	v, err := NewViewer(world.NewManager(cfg.Generator.Seed, cfg.Generator, nil))
	if err != nil {
		log.Fatalf("❌ Failed to start viewer: %v", err)
	}
	v.run()
}
