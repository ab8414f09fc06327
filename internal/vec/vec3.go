package vec

// Vec3Float представляет трехмерный вектор с плавающими координатами.
// Z - высота над полом уровня.
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// Lift поднимает точку сетки в 3D: центр клетки на высоте z
func Lift(cell Vec2, z float64) Vec3Float {
	return Vec3Float{
		X: float64(cell.X) + 0.5,
		Y: float64(cell.Y) + 0.5,
		Z: z,
	}
}
