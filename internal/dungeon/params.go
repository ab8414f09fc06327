package dungeon

import (
	"errors"
	"fmt"

	"github.com/annel0/dungeon-gen/internal/logging"
)

// Значения по умолчанию
const (
	DefaultMinRoomSize       = 4
	DefaultMaxRoomSize       = 6
	DefaultLoopFactor        = 0.125 // вероятность добавить ребро триангуляции сверх остова
	DefaultMaxFailedAttempts = 150   // подряд неудачных попыток - уровень заполнен

	// отступ от края карты под стены и внешний коридор со своей стеной
	placementMargin = 3
)

var (
	ErrInvalidParams     = errors.New("invalid dungeon params")
	ErrPortalOutOfBounds = errors.New("stair portal does not fit the level")
	ErrPortalOverlap     = errors.New("stair portals overlap on the level below")
	ErrUnresolvedVertex  = errors.New("triangulation vertex does not match any room")
)

// Params входные параметры генерации одного уровня
type Params struct {
	Seed              int64 // сид мира
	Level             int   // 0 - верхний уровень, вниз номера растут
	Width, Height     int
	MinRoomSize       int
	MaxRoomSize       int
	LoopFactor        float64
	MaxFailedAttempts int
}

// DefaultParams параметры с размерами комнат по умолчанию
func DefaultParams(seed int64, level, width, height int) Params {
	return Params{
		Seed:              seed,
		Level:             level,
		Width:             width,
		Height:            height,
		MinRoomSize:       DefaultMinRoomSize,
		MaxRoomSize:       DefaultMaxRoomSize,
		LoopFactor:        DefaultLoopFactor,
		MaxFailedAttempts: DefaultMaxFailedAttempts,
	}
}

// LevelSeed сид генератора случайных чисел конкретного уровня
func (p Params) LevelSeed() int64 {
	return 100*p.Seed + int64(p.Level)
}

func (p Params) validate() error {
	stairSpan := 3 + 2*placementMargin + 1
	roomSpan := p.MaxRoomSize + 2*placementMargin + 1
	minSide := stairSpan
	if roomSpan > minSide {
		minSide = roomSpan
	}

	switch {
	case p.Level < 0:
		return fmt.Errorf("%w: negative level %d", ErrInvalidParams, p.Level)
	case p.MinRoomSize < 2 || p.MaxRoomSize < p.MinRoomSize:
		return fmt.Errorf("%w: room size range [%d,%d]", ErrInvalidParams, p.MinRoomSize, p.MaxRoomSize)
	case p.Width < minSide || p.Height < minSide:
		return fmt.Errorf("%w: map %dx%d smaller than %dx%d", ErrInvalidParams, p.Width, p.Height, minSide, minSide)
	case p.LoopFactor < 0 || p.LoopFactor > 1:
		return fmt.Errorf("%w: loop factor %.3f", ErrInvalidParams, p.LoopFactor)
	case p.MaxFailedAttempts <= 0:
		return fmt.Errorf("%w: max failed attempts %d", ErrInvalidParams, p.MaxFailedAttempts)
	}
	return nil
}

// Stats счётчики одного прогона генерации
type Stats struct {
	RoomsPlaced         int `json:"rooms_placed"`         // обычные комнаты
	StairWells          int `json:"stair_wells"`          // пролёты вверх и вниз
	PlacementRejections int `json:"placement_rejections"` // все отклонённые попытки размещения комнат
	CandidateEdges      int `json:"candidate_edges"`      // рёбра триангуляции
	TreeEdges           int `json:"tree_edges"`
	LoopEdges           int `json:"loop_edges"`
	Corridors           int `json:"corridors"`         // успешно проложенные коридоры
	CorridorFailures    int `json:"corridor_failures"` // пары, для которых путь не найден
}

// Option настраивает генерацию
type Option func(*builder)

// WithTriangulator подменяет алгоритм триангуляции
func WithTriangulator(t Triangulator) Option {
	return func(b *builder) {
		if t != nil {
			b.triangulator = t
		}
	}
}

// WithLogger задаёт логгер генерации
func WithLogger(l *logging.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.log = l
		}
	}
}
