package render

import (
	"github.com/Zachkp/journey/internal/timeline"
	"golang.org/x/net/html"
)

// RenderMobile replaces the children of container with a plain card stack,
// most recent start first. It ignores lanes and geometry and returns the
// number of cards rendered.
func RenderMobile(container *html.Node, entries []timeline.Entry) int {
	if container == nil {
		return 0
	}
	Clear(container)
	SetAttr(container, "style", "")
	SetAttr(container, "data-mode", Mobile.String())

	nodes := element("div", "class", ClassNodes)
	sorted := timeline.SortByStartDesc(entries)
	for _, e := range sorted {
		details, _ := detailsNode(e)
		card := appendChildren(element("div", "class", ClassCard+" "+cardClass(e)),
			appendChildren(element("div", "class", "node-header"),
				logoNode(e, 36),
				appendChildren(element("div", "class", "node-header-text"),
					dateNode(e),
					appendChildren(element("h3"), text(e.Title)),
					orgNode(e))),
			details)
		nodes.AppendChild(appendChildren(element("div", "class", ClassNode), card))
	}

	appendChildren(container, legendNode("Work"), nodes)
	return len(sorted)
}
