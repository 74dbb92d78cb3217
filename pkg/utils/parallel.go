package utils

import (
	"github.com/zeromicro/go-zero/core/mr"
)

// ParallelMap 以最多 workers 个协程并发执行 fn，结果顺序与 input 一致。
// 输入不足两个或 workers <= 1 时直接在当前协程顺序执行。
func ParallelMap[T any, R any](input []T, workers int, fn func(T) R) []R {
	out := make([]R, len(input))
	if len(input) < 2 || workers <= 1 {
		for i, v := range input {
			out[i] = fn(v)
		}
		return out
	}
	if workers > len(input) {
		workers = len(input)
	}

	// 每个下标只由一个协程写入，无需加锁
	mr.ForEach[int](func(source chan<- int) {
		for i := range input {
			source <- i
		}
	}, func(i int) {
		out[i] = fn(input[i])
	}, mr.WithWorkers(workers))
	return out
}
