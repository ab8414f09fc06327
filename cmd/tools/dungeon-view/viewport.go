package main

// viewport видимое окно карты. y считается от северного края.
type viewport struct {
	x, y          int
	width, height int
	mapW, mapH    int
}

func (vp *viewport) reset(mapW, mapH int) {
	vp.mapW, vp.mapH = mapW, mapH
	vp.x, vp.y = 0, 0
}

func (vp *viewport) resize(width, height int) {
	vp.width, vp.height = width, height
	vp.clamp()
}

func (vp *viewport) scroll(dx, dy int) {
	vp.x += dx
	vp.y += dy
	vp.clamp()
}

func (vp *viewport) clamp() {
	maxX := vp.mapW - vp.width
	maxY := vp.mapH - vp.height
	if vp.x > maxX {
		vp.x = maxX
	}
	if vp.y > maxY {
		vp.y = maxY
	}
	if vp.x < 0 {
		vp.x = 0
	}
	if vp.y < 0 {
		vp.y = 0
	}
}
