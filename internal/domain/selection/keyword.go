package selection

import (
	"slices"
	"strings"
)

// KeywordSet 有序的小写关键词集合,构造后不可变
type KeywordSet struct {
	words []string
}

// NewKeywordSet 转小写、去空白、去掉空词和重复词,保留首次出现的顺序
func NewKeywordSet(words ...string) KeywordSet {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return KeywordSet{words: out}
}

// Matches 大小写不敏感的子串匹配,任一关键词命中即返回true
func (ks KeywordSet) Matches(label string) bool {
	if len(ks.words) == 0 {
		return false
	}
	lower := strings.ToLower(label)
	for _, w := range ks.words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func (ks KeywordSet) Words() []string {
	return slices.Clone(ks.words)
}

func (ks KeywordSet) Len() int {
	return len(ks.words)
}

func (ks KeywordSet) IsEmpty() bool {
	return len(ks.words) == 0
}
