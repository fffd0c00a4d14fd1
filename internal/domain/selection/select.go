// Package selection 从浏览器驱动给出的结果列表中挑选目标:
// 按页面顺序第一个命中关键词的条目,否则第一个有效目标,否则 NotFound
package selection

import (
	"iter"
	"slices"
)

// Select 两次独立的线性扫描:
// 1. 第一个标签包含任一关键词的候选 -> Selected(c, true)
// 2. 否则从头开始,第一个 IsValidTarget 的候选 -> Selected(c, false)
// 3. 都没有 -> NotFound
// 纯函数,不做I/O,不返回错误
func Select[L any](candidates iter.Seq[Candidate[L]], keywords KeywordSet) Result[L] {
	if candidates == nil {
		return NotFound[L]()
	}
	if !keywords.IsEmpty() {
		for c := range candidates {
			if keywords.Matches(c.Label) {
				return Selected(c, true)
			}
		}
	}
	for c := range candidates {
		if c.IsValidTarget {
			return Selected(c, false)
		}
	}
	return NotFound[L]()
}

// SelectSlice 切片版本的 Select
func SelectSlice[L any](candidates []Candidate[L], keywords KeywordSet) Result[L] {
	return Select(slices.Values(candidates), keywords)
}
