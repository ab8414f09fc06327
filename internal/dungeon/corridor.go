package dungeon

import (
	"container/heap"

	"github.com/annel0/dungeon-gen/internal/vec"
)

// Стоимость шага в клетку. Уже проложенные коридоры и проходы дешевле пустоты,
// поэтому коридоры сливаются. Через стены пробиваться дорого, через углы и лестницы почти невозможно.
const (
	costVoid     = 5
	costFloor    = 10
	costCorridor = 1
	costWall     = 20
	costDoorway  = 0
	costBlocked  = 500
)

// searchSteps порядок обхода соседей: север, восток, юг, запад
var searchSteps = [4]vec.Vec2{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
}

func stepCost(t TileType) int {
	switch t {
	case TileVoid:
		return costVoid
	case TileFloor:
		return costFloor
	case TileCorridor:
		return costCorridor
	case TileWall:
		return costWall
	case TileDoorway:
		return costDoorway
	default:
		return costBlocked
	}
}

// pathNode узел поиска
type pathNode struct {
	pos    vec.Vec2
	cost   int
	seq    int // порядок первой вставки, разрешает равенство стоимостей
	parent *pathNode
	index  int // позиция в куче
}

// pathQueue очередь с приоритетом по (cost, seq)
type pathQueue []*pathNode

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}
	return pq[i].seq < pq[j].seq
}

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pathQueue) Push(x interface{}) {
	node := x.(*pathNode)
	node.index = len(*pq)
	*pq = append(*pq, node)
}

func (pq *pathQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*pq = old[:n-1]
	return node
}

// makeCorridors прокладывает коридор для каждой пары соединённых комнат, один раз на пару
func (b *builder) makeCorridors() {
	for _, room := range b.rooms {
		for _, nb := range room.CloseNeighbours {
			if room.ID >= nb.ID {
				continue
			}
			if _, ok := b.grid.carveCorridor(room.Centre, nb.Centre); ok {
				b.stats.Corridors++
				continue
			}
			b.stats.CorridorFailures++
			b.log.Debug("Коридор между комнатами %d и %d не найден", room.ID, nb.ID)
		}
	}
}

// FindPath ищет самый дешёвый путь от from до to по текущему содержимому сетки.
// Путь включает обе конечные точки.
func (g *Grid) FindPath(from, to vec.Vec2) ([]vec.Vec2, bool) {
	if !g.InBounds(from.X, from.Y) || !g.InBounds(to.X, to.Y) {
		return nil, false
	}

	seq := 0
	start := &pathNode{pos: from, seq: seq}
	fringe := &pathQueue{}
	heap.Push(fringe, start)

	open := map[vec.Vec2]*pathNode{from: start}
	closed := make(map[vec.Vec2]bool)

	for fringe.Len() > 0 {
		current := heap.Pop(fringe).(*pathNode)
		delete(open, current.pos)
		closed[current.pos] = true

		if current.pos == to {
			return backtrace(current), true
		}

		for _, step := range searchSteps {
			p := current.pos.Add(step)
			if !g.InBounds(p.X, p.Y) || closed[p] {
				continue
			}

			cost := current.cost + stepCost(g.at(p))
			if node, ok := open[p]; ok {
				if cost < node.cost {
					node.cost = cost
					node.parent = current
					heap.Fix(fringe, node.index)
				}
				continue
			}

			seq++
			node := &pathNode{pos: p, cost: cost, seq: seq, parent: current}
			open[p] = node
			heap.Push(fringe, node)
		}
	}
	return nil, false
}

func backtrace(end *pathNode) []vec.Vec2 {
	var path []vec.Vec2
	for n := end; n != nil; n = n.parent {
		path = append(path, n.pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// carveCorridor прокладывает путь: пустота становится коридором, стена - проходом
func (g *Grid) carveCorridor(from, to vec.Vec2) ([]vec.Vec2, bool) {
	path, ok := g.FindPath(from, to)
	if !ok {
		return nil, false
	}
	for _, p := range path {
		switch g.tiles[p.Y][p.X] {
		case TileVoid:
			g.tiles[p.Y][p.X] = TileCorridor
		case TileWall:
			g.tiles[p.Y][p.X] = TileDoorway
		}
	}
	return path, true
}
