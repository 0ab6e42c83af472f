package regiontree

import (
	"bytes"
	"fmt"
)

// Dump输出树结构用于调试，格式不保证稳定。
// 使用显式栈遍历，深树下不受递归深度限制
func (t *Tree) Dump() string {
	buffer := bytes.Buffer{}
	if t.root == nil {
		buffer.WriteString("empty tree\n")
		return buffer.String()
	}

	type frame struct {
		node   *node
		label  string
		indent string
	}
	stack := []frame{{t.root, "root", ""}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := top.node
		fmt.Fprintf(&buffer, "%s%s: %s\n", top.indent, top.label, n.decision)
		for _, region := range n.bucket {
			fmt.Fprintf(&buffer, "%s  %s\n", top.indent, region)
		}
		// 先压right后压left，保证输出顺序为left在前
		if n.right != nil {
			stack = append(stack, frame{n.right, "right", top.indent + "  "})
		}
		if n.left != nil {
			stack = append(stack, frame{n.left, "left", top.indent + "  "})
		}
	}
	return buffer.String()
}
