package ptr

// To возвращает указатель на переданное значение
func To[T any](v T) *T {
	return &v
}
