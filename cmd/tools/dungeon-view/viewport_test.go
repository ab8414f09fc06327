package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewport_Clamp(t *testing.T) {
	var vp viewport
	vp.reset(100, 40)
	vp.resize(80, 20)

	vp.scroll(-5, -5)
	assert.Equal(t, 0, vp.x)
	assert.Equal(t, 0, vp.y)

	vp.scroll(50, 50)
	assert.Equal(t, 20, vp.x, "правый край карты у края экрана")
	assert.Equal(t, 20, vp.y)

	vp.resize(200, 200)
	assert.Equal(t, 0, vp.x, "карта меньше экрана - прокрутки нет")
	assert.Equal(t, 0, vp.y)
}
