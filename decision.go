package regiontree

import (
	"fmt"
)

const INVALID_DIMENSION = -1

type regionSide uint8

const (
	SIDE_CUT   regionSide = iota // 区域横跨切分值，无法下推
	SIDE_LEFT                    // 区域整体位于切分值左侧
	SIDE_RIGHT                   // 区域整体位于切分值右侧
)

// decision表示一次空间切分：在dimension维上以refValue为界，
// dimension为INVALID_DIMENSION时表示叶子节点，不再切分
type decision struct {
	dimension int
	refValue  int64
}

func invalidDecision() decision {
	return decision{INVALID_DIMENSION, 0}
}

func (d *decision) isValid() bool {
	return d.dimension >= 0
}

// classify对refValue处的切分面给出区域的归属，三种结果互斥且完备
func (d *decision) classify(region Region) regionSide {
	interval := region[d.dimension]
	if interval.Contains(d.refValue) {
		return SIDE_CUT
	} else if interval.ToTheLeft(d.refValue) {
		return SIDE_LEFT
	}
	return SIDE_RIGHT
}

func (d decision) String() string {
	if !d.isValid() {
		return "decision(none)"
	}
	return fmt.Sprintf("decision(dim=%d, ref=%d)", d.dimension, d.refValue)
}
