package selection

// Candidate 一个可选择的结果条目(例如视频搜索结果)
// L 是定位器类型,对本组件不透明,由浏览器适配层决定(例如元素选择器+下标)
type Candidate[L any] struct {
	Label         string `json:"label"`
	Locator       L      `json:"locator"`
	IsValidTarget bool   `json:"is_valid_target"`
}

// Result 选择结果,只有两种状态: Selected 或 NotFound
type Result[L any] struct {
	Candidate        Candidate[L]
	MatchedByKeyword bool
	found            bool
}

// Selected 构造一个选中结果
func Selected[L any](c Candidate[L], matchedByKeyword bool) Result[L] {
	return Result[L]{Candidate: c, MatchedByKeyword: matchedByKeyword, found: true}
}

// NotFound 构造一个未找到结果
func NotFound[L any]() Result[L] {
	return Result[L]{}
}

func (r Result[L]) Found() bool {
	return r.found
}

func (r Result[L]) String() string {
	switch {
	case !r.found:
		return "NotFound"
	case r.MatchedByKeyword:
		return "Selected(keyword): " + r.Candidate.Label
	default:
		return "Selected(fallback): " + r.Candidate.Label
	}
}
