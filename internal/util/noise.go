package util

import (
	"github.com/aquilax/go-perlin"
)

// Параметры шума Перлина
const (
	perlinAlpha   = 2.0 // Сглаживание шума
	perlinBeta    = 2.0 // Частота шума
	perlinOctaves = 3   // Количество октав
)

// Noise детерминированный 2D шум Перлина со своим сидом.
// Каждый уровень создаёт свой экземпляр, глобального состояния нет.
type Noise struct {
	perlin *perlin.Perlin
	scale  float64
}

// NewNoise создаёт генератор шума с указанным сидом и масштабом координат
func NewNoise(seed int64, scale float64) *Noise {
	return &Noise{
		perlin: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed),
		scale:  scale,
	}
}

// At возвращает значение шума для клетки (от 0 до 1)
func (n *Noise) At(x, y int) float64 {
	// Получаем значение шума (от -1 до 1)
	v := n.perlin.Noise2D(float64(x)*n.scale, float64(y)*n.scale)

	// Преобразуем в диапазон от 0 до 1
	v = (v + 1.0) / 2.0
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
