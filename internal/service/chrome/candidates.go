package service

import (
	"iter"
	"strings"

	"github.com/LouYuanbo1/browseragent/internal/domain/selection"
	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/types"
)

// candidates 将页面链接按顺序转换为候选,可重复遍历
func candidates(anchors []types.Anchor, validHref string) iter.Seq[selection.Candidate[types.Anchor]] {
	return func(yield func(selection.Candidate[types.Anchor]) bool) {
		for _, a := range anchors {
			c := selection.Candidate[types.Anchor]{
				Label:         a.Label,
				Locator:       a,
				IsValidTarget: isValidTarget(a, validHref),
			}
			if !yield(c) {
				return
			}
		}
	}
}

func isValidTarget(a types.Anchor, validHref string) bool {
	return a.Href != "" && strings.Contains(a.Href, validHref)
}
