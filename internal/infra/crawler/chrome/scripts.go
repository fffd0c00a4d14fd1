package chrome

import (
	"encoding/json"
	"fmt"
)

// 页面内执行的JS片段,全部为函数定义,由各驱动负责调用

func jsString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// AnchorsScript 按页面顺序收集链接: label 优先取 title 属性,否则取 innerText
func AnchorsScript(selector string) string {
	return fmt.Sprintf(`() => Array.from(document.querySelectorAll(%s)).map((a, i) => ({
	selector: %s,
	index: i,
	label: ((a.getAttribute("title") || a.innerText || "") + "").trim(),
	href: a.getAttribute("href") || "",
}))`, jsString(selector), jsString(selector))
}

// VideoPausedScript 返回视频的 paused 状态,没有视频元素时返回 null
func VideoPausedScript(selector string) string {
	return fmt.Sprintf(`() => { const v = document.querySelector(%s); return v ? v.paused : null; }`, jsString(selector))
}

// VideoPlayScript 调用 play(),忽略自动播放策略导致的拒绝
func VideoPlayScript(selector string) string {
	return fmt.Sprintf(`() => { const v = document.querySelector(%s); if (v) { v.play().catch(() => {}); return true; } return false; }`, jsString(selector))
}

// TextScript 返回第一个匹配容器的 innerText,都不匹配时取 body
func TextScript(selectors []string) string {
	return fmt.Sprintf(`() => {
	for (const sel of %s) {
		const el = document.querySelector(sel);
		if (el) { return el.innerText || ""; }
	}
	return document.body ? document.body.innerText : "";
}`, jsString(selectors))
}

// ClickButtonByTextScript 点击文字完全匹配(忽略首尾空白)的第一个按钮,返回点击的文字或空串
func ClickButtonByTextScript(labels []string) string {
	return fmt.Sprintf(`() => {
	const labels = %s;
	const buttons = Array.from(document.querySelectorAll("button, tp-yt-paper-button, [role=button]"));
	for (const label of labels) {
		const b = buttons.find(el => (el.innerText || "").trim() === label);
		if (b) { b.click(); return label; }
	}
	return "";
}`, jsString(labels))
}

// CenterScript 将元素滚动到视口中央,返回其中心点坐标,没有元素时返回 null
func CenterScript(selector string) string {
	return fmt.Sprintf(`() => {
	const el = document.querySelector(%s);
	if (!el) { return null; }
	el.scrollIntoView({block: "center", inline: "center"});
	const r = el.getBoundingClientRect();
	return {x: r.left + r.width / 2, y: r.top + r.height / 2};
}`, jsString(selector))
}

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
