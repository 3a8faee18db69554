package render

import (
	"strconv"

	"github.com/Zachkp/journey/internal/timeline"
	"golang.org/x/net/html"
)

// Structural class names shared with the stylesheet and the tag marquee.
const (
	ContainerID    = "journey-timeline"
	ClassLegend    = "timeline-legend"
	ClassNodes     = "timeline-nodes"
	ClassNode      = "timeline-node"
	ClassCard      = "node-card"
	ClassPreview   = "node-details-preview"
	ClassDetails   = "node-details-full"
	ClassTagsStrip = "tags-wrapper"
	ClassTags      = "timeline-tags"
	ClassTag       = "tag"
)

func cardClass(e timeline.Entry) string {
	if e.IsWork() {
		return "work-card"
	}
	return "edu-card"
}

func kindColor(e timeline.Entry) string {
	if e.IsWork() {
		return "#10b981"
	}
	return "#3b82f6"
}

func logoNode(e timeline.Entry, size int) *html.Node {
	if !e.LogoIsImage() {
		return appendChildren(element("span", "class", "node-logo"), text(e.Logo))
	}
	class := "node-logo-img"
	if e.InvertLogo {
		class += " logo-invert"
	}
	s := strconv.Itoa(size)
	return element("img",
		"class", class,
		"src", e.Logo,
		"alt", e.Organization+" logo",
		"width", s,
		"height", s,
		"loading", "lazy")
}

func orgNode(e timeline.Entry) *html.Node {
	p := element("p", "class", "node-org")
	if e.URL != "" {
		return appendChildren(p, appendChildren(
			element("a", "href", e.URL, "class", "node-org-link", "target", "_blank", "rel", "noopener noreferrer"),
			text(e.Organization)))
	}
	return appendChildren(p, appendChildren(element("span"), text(e.Organization)))
}

func dateNode(e timeline.Entry) *html.Node {
	return appendChildren(element("span", "class", "node-date"), text(timeline.FormatRange(e.Start, e.End)))
}

// detailsNode builds the description and tag strip; it also returns the
// strip wrapper for the marquee hook.
func detailsNode(e timeline.Entry) (full, strip *html.Node) {
	tags := element("div", "class", ClassTags)
	for _, tag := range e.Tags {
		appendChildren(tags, appendChildren(element("span", "class", ClassTag), text(tag)))
	}
	strip = appendChildren(element("div", "class", ClassTagsStrip), tags)
	full = appendChildren(element("div", "class", ClassDetails),
		appendChildren(element("p", "class", "node-desc"), text(e.Description)),
		strip)
	return full, strip
}

func legendNode(workLabel string) *html.Node {
	item := func(dot, label string) *html.Node {
		return appendChildren(element("div", "class", "legend-item"),
			element("span", "class", "legend-dot "+dot),
			appendChildren(element("span"), text(label)))
	}
	return appendChildren(element("div", "class", ClassLegend),
		item("work-dot", workLabel),
		item("edu-dot", "Education"))
}
