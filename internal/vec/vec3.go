package vec

// Vec3 представляет трехмерный вектор с целочисленными координатами.
// В мировых координатах один шаг равен одному блоку.
type Vec3 struct {
	X int
	Y int
	Z int
}

// Horizontal отбрасывает координату Y.
func (v Vec3) Horizontal() Vec2 {
	return Vec2{X: v.X, Z: v.Z}
}

// DistanceTo возвращает квадрат расстояния до другого вектора
func (v Vec3) DistanceTo(other Vec3) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return float64(dx*dx + dy*dy + dz*dz)
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}
