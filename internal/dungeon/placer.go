package dungeon

// placeRooms кидает случайные комнаты, пока не наберётся MaxFailedAttempts
// неудачных попыток подряд. Удачная попытка обнуляет счётчик.
func (b *builder) placeRooms() {
	failed := 0
	for failed < b.params.MaxFailedAttempts {
		room := b.randomRoom(len(b.rooms))
		if b.overlapsAny(room) || b.adjacentAny(room) {
			failed++
			b.stats.PlacementRejections++
			continue
		}
		b.rooms = append(b.rooms, room)
		b.stats.RoomsPlaced++
		failed = 0
	}
	b.log.Trace("Размещено комнат: %d, отклонено попыток: %d", b.stats.RoomsPlaced, b.stats.PlacementRejections)
}

// randomRoom размер выбирается раньше позиции, порядок вызовов rng важен для воспроизводимости
func (b *builder) randomRoom(id int) *Room {
	w := b.randRange(b.params.MinRoomSize, b.params.MaxRoomSize)
	h := b.randRange(b.params.MinRoomSize, b.params.MaxRoomSize)
	return b.placeRoom(id, w, h)
}

// placeRoom выбирает угол так, чтобы вокруг комнаты оставалось место под внешний коридор
func (b *builder) placeRoom(id, w, h int) *Room {
	x := b.randRange(placementMargin, b.params.Width-(w+placementMargin+1))
	y := b.randRange(placementMargin, b.params.Height-(h+placementMargin+1))
	return newRoom(id, x, y, w, h)
}

// randRange случайное целое в [lo, hi] включительно
func (b *builder) randRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + b.rng.Intn(hi-lo+1)
}

func (b *builder) overlapsAny(r *Room) bool {
	for _, other := range b.rooms {
		if overlaps(r, other) {
			return true
		}
	}
	return false
}

func (b *builder) adjacentAny(r *Room) bool {
	for _, other := range b.rooms {
		if adjacent(r, other) {
			return true
		}
	}
	return false
}
