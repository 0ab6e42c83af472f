package regiontree

import (
	"fmt"
)

// Interval是一维整数闭区间[Left, Right]，要求Left <= Right，由调用方保证
type Interval struct {
	Left, Right int64
}

func NewInterval(left, right int64) Interval {
	return Interval{left, right}
}

func (i Interval) Contains(x int64) bool {
	return i.Left <= x && x <= i.Right
}

// ToTheLeft表示整个区间位于x的左侧
func (i Interval) ToTheLeft(x int64) bool {
	return x > i.Right
}

// ToTheRight表示整个区间位于x的右侧
func (i Interval) ToTheRight(x int64) bool {
	return x < i.Left
}

func (i Interval) String() string {
	return fmt.Sprintf("[%d, %d]", i.Left, i.Right)
}
