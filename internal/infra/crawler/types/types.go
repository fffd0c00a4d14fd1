package types

// Anchor 页面上的一个链接元素,作为候选结果的定位器
// Selector + Index 唯一确定元素(按页面出现顺序)
type Anchor struct {
	Selector string `json:"selector"`
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Href     string `json:"href"`
}

type PageText struct {
	Url      string
	Selector string
	Text     string
}
