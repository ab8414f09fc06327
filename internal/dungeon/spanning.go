package dungeon

import "math"

// buildSpanningTree алгоритм Прима по рёбрам триангуляции, вес - расстояние между центрами.
// Начальная комната выбирается случайно.
func (b *builder) buildSpanningTree() {
	n := len(b.rooms)
	if n == 0 {
		return
	}

	inTree := make([]bool, n)
	connected := make([]*Room, 0, n)

	next := b.rooms[b.rng.Intn(n)]
	for next != nil {
		connected = append(connected, next)
		inTree[next.ID] = true

		var branch *Room
		next = nil
		smallest := math.MaxFloat64
		for _, node := range connected {
			for i, nb := range node.nbors {
				if inTree[nb.ID] {
					continue
				}
				if d := node.distances[i]; d < smallest {
					smallest = d
					next = nb
					branch = node
				}
			}
		}

		if next != nil {
			link(next, branch)
			b.stats.TreeEdges++
		}
	}

	if len(connected) < n {
		b.log.Warn("Остов покрыл %d из %d комнат", len(connected), n)
	}
}

// addLoopEdges добавляет рёбра триангуляции вне остова с вероятностью LoopFactor.
// Каждое ребро разыгрывается один раз, со стороны комнаты с меньшим ID.
func (b *builder) addLoopEdges() {
	for _, room := range b.rooms {
		for _, nb := range room.nbors {
			if nb.ID < room.ID || room.IsCloseNeighbour(nb) {
				continue
			}
			if b.rng.Float64() < b.params.LoopFactor {
				link(room, nb)
				b.stats.LoopEdges++
			}
		}
	}
}
