// Package utils
package utils

func Filter[T any](src []T, filter func(element T) bool) (result []T) {
	result = make([]T, 0, len(src))
	for _, v := range src {
		if filter(v) {
			result = append(result, v)
		}
	}
	return
}

func Map[T any, R any](src []T, mapper func(element T) R) (result []R) {
	result = make([]R, 0, len(src))
	for _, v := range src {
		result = append(result, mapper(v))
	}
	return
}

// ReverseForEach 逆序遍历, 回调收到原始下标
func ReverseForEach[T any](src []T, callback func(index int, element T)) {
	for i := len(src) - 1; i >= 0; i-- {
		callback(i, src[i])
	}
}
