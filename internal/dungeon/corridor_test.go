package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/dungeon-gen/internal/vec"
)

// На пустой сетке у диагонального шага два пути равной стоимости.
// Побеждает сосед, вставленный в очередь первым (порядок север, восток, юг, запад),
// а равная стоимость не переписывает родителя.
func TestFindPath_TieBreak(t *testing.T) {
	tests := []struct {
		name     string
		from, to vec.Vec2
		want     []vec.Vec2
	}{
		{
			name: "север раньше востока",
			from: vec.Vec2{X: 0, Y: 0},
			to:   vec.Vec2{X: 1, Y: 1},
			want: []vec.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		},
		{
			name: "юг раньше запада",
			from: vec.Vec2{X: 1, Y: 1},
			to:   vec.Vec2{X: 0, Y: 0},
			want: []vec.Vec2{{X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}},
		},
		{
			name: "прямая линия",
			from: vec.Vec2{X: 0, Y: 2},
			to:   vec.Vec2{X: 3, Y: 2},
			want: []vec.Vec2{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(4, 4)
			path, ok := g.FindPath(tt.from, tt.to)
			require.True(t, ok)
			assert.Equal(t, tt.want, path)
		})
	}
}

func TestFindPath_SameCell(t *testing.T) {
	g := NewGrid(4, 4)
	path, ok := g.FindPath(vec.Vec2{X: 2, Y: 2}, vec.Vec2{X: 2, Y: 2})
	require.True(t, ok)
	assert.Equal(t, []vec.Vec2{{X: 2, Y: 2}}, path)
}
