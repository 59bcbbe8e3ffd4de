package mutils

import "golang.org/x/exp/constraints"

func Clamp[T constraints.Integer | constraints.Float](v, minV, maxV T) T {
	return min(maxV, max(minV, v))
}

func Lerp[T constraints.Integer | constraints.Float](min1, max1, t T) T {
	return min1 + (max1-min1)*t
}
