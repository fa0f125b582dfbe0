// Утилитарные функции общего назначения
package utils

func StrPtr(s string) *string {
	return &s
}

// MapPtr применяет f к значению под указателем и возвращает указатель на результат.
// nil остаётся nil: для частичных обновлений "поле не передано".
func MapPtr[T any](p *T, f func(T) T) *T {
	if p == nil {
		return nil
	}
	v := f(*p)
	return &v
}
