package regiontree

import (
	"gitlab.x.lan/yunshan/regiontree/pool"
)

// 树重建时旧节点会被整体丢弃，通过池回收避免反复申请
var nodePool = pool.NewLockFreePool(func() interface{} {
	return new(node)
})

// node持有无法被自身decision切分的区域（叶子节点持有剩余的全部区域），
// 左右子树为独占所有权，不存在共享和回边
type node struct {
	bucket   []Region
	decision decision

	left  *node
	right *node
}

func acquireNode() *node {
	n := nodePool.Get().(*node)
	n.decision = invalidDecision()
	return n
}

func releaseNode(n *node) {
	*n = node{}
	nodePool.Put(n)
}

// releaseTree回收整棵子树，显式使用栈遍历，避免退化树导致递归过深
func releaseTree(root *node) {
	if root == nil {
		return
	}
	stack := make([]*node, 0, 64)
	stack = append(stack, root)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.left != nil {
			stack = append(stack, n.left)
		}
		if n.right != nil {
			stack = append(stack, n.right)
		}
		releaseNode(n)
	}
}

// findPoint自顶向下查找，单条路径：先检查本节点bucket，再按decision下降。
// 坐标恰好等于refValue时不再下降：建树时refValue取中位区间右端点+1，
// 左子树区域的右端点均小于refValue、右子树区域的左端点均大于refValue，
// 该点不会落入任何子树区域，这一行为与bucket检查共同保证查询正确
func (n *node) findPoint(point []int64) bool {
	for n != nil {
		for _, region := range n.bucket {
			if region.Contains(point) {
				return true
			}
		}
		if !n.decision.isValid() {
			return false
		}
		if v := point[n.decision.dimension]; v < n.decision.refValue {
			n = n.left
		} else if v > n.decision.refValue {
			n = n.right
		} else {
			return false
		}
	}
	return false
}

// sumBucketSizes统计子树内所有bucket的区域个数，
// 树构建完成后应等于插入的区域总数
func (n *node) sumBucketSizes() int {
	if n == nil {
		return 0
	}
	sum := 0
	stack := make([]*node, 0, 64)
	stack = append(stack, n)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sum += len(top.bucket)
		if top.left != nil {
			stack = append(stack, top.left)
		}
		if top.right != nil {
			stack = append(stack, top.right)
		}
	}
	return sum
}
