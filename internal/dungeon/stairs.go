package dungeon

import (
	"fmt"

	"github.com/annel0/dungeon-gen/internal/vec"
)

// upStairWell пролёт вверх, который уровень ниже построит для портала.
// Площадка лежит на шаг за площадкой верхней лестницы, лестница смотрит в обратную сторону.
func upStairWell(id int, portal StairPortal) *Room {
	dir := portal.Direction.Opposite()
	w, h := portal.Width, portal.Height
	if w <= 0 || h <= 0 {
		w, h = stairWellSize(dir)
	}

	landing := portal.Origin.Add(dir.Step())
	origin := landing.Sub(landingOffset(dir))
	return newStairWell(id, origin, w, h, dir, TileStairsUp)
}

// connectStairWells ставит лестницы вверх напротив лестниц вниз уровня выше
func (b *builder) connectStairWells(above []StairPortal) error {
	for _, portal := range above {
		stairs := upStairWell(len(b.rooms), portal)

		minX, minY, maxX, maxY := stairs.Bounds()
		if minX < 0 || minY < 0 || maxX >= b.params.Width || maxY >= b.params.Height {
			return fmt.Errorf("%w: portal at %s facing %s, level %dx%d",
				ErrPortalOutOfBounds, portal.Origin, portal.Direction, b.params.Width, b.params.Height)
		}
		if b.overlapsAny(stairs) {
			return fmt.Errorf("%w: portal at %s facing %s", ErrPortalOverlap, portal.Origin, portal.Direction)
		}

		b.rooms = append(b.rooms, stairs)
		b.stats.StairWells++
	}
	return nil
}

// generateStairWells ставит одну или две лестницы вниз.
// Попытки повторяются до успеха, минимальный размер карты проверен в validate.
func (b *builder) generateStairWells() {
	count := b.randRange(1, 2)
	for count > 0 {
		stairs := b.randomStairWell(len(b.rooms))
		if b.overlapsAny(stairs) || b.clashesBelow(stairs) {
			b.stats.PlacementRejections++
			continue
		}
		b.rooms = append(b.rooms, stairs)
		b.portalsBelow = append(b.portalsBelow, stairs.Portal())
		b.stats.StairWells++
		count--
	}
}

// clashesBelow true, если на уровне ниже пролёт вверх для stairs
// заденет пролёт вверх уже принятой лестницы вниз.
// Пролёт вверх сдвинут относительно лестницы вниз, поэтому разнесённые здесь лестницы могут сойтись там.
func (b *builder) clashesBelow(stairs *Room) bool {
	projected := upStairWell(-1, stairs.Portal())
	for _, p := range b.portalsBelow {
		if overlaps(projected, upStairWell(-1, p)) {
			return true
		}
	}
	return false
}

func (b *builder) randomStairWell(id int) *Room {
	dir := Directions[b.rng.Intn(len(Directions))]
	w, h := stairWellSize(dir)
	origin := vec.Vec2{
		X: b.randRange(placementMargin, b.params.Width-(w+placementMargin+1)),
		Y: b.randRange(placementMargin, b.params.Height-(h+placementMargin+1)),
	}
	return newStairWell(id, origin, w, h, dir, TileStairsDown)
}
