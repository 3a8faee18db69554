package render

import (
	"testing"
	"time"

	"github.com/Zachkp/journey/internal/timeline"
	"golang.org/x/net/html"
)

var testNow = time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)

func testOptions() Options {
	return Options{Config: timeline.DefaultConfig(), Now: func() time.Time { return testNow }}
}

func mk(t *testing.T, kind timeline.Kind, start, end, title string, tags ...string) timeline.Entry {
	t.Helper()
	s, err := timeline.ParseDate(start)
	if err != nil {
		t.Fatal(err)
	}
	e, err := timeline.ParseDate(end)
	if err != nil {
		t.Fatal(err)
	}
	return timeline.Entry{Kind: kind, Start: s, End: e, Title: title, Organization: "La Salle BCN", Description: "About " + title, Tags: tags, Logo: "🔹"}
}

func journey(t *testing.T) []timeline.Entry {
	t.Helper()
	return []timeline.Entry{
		mk(t, timeline.KindWork, "2024-10", "present", "Backend Developer", "PostgreSQL", "Python", "Backend", "Kubernetes"),
		mk(t, timeline.KindWork, "2024-10", "2025-06", "University Tutor", "Teaching"),
		mk(t, timeline.KindEducation, "2024-10", "2025-07", "MSc Data Science", "PowerBI", "Machine Learning"),
		mk(t, timeline.KindWork, "2024-02", "2024-10", "Database Engineer", "Node.js"),
		mk(t, timeline.KindEducation, "2020-01", "2024-07", "BSc Computer Engineering", "Java"),
		mk(t, timeline.KindWork, "2022-09", "2023-07", "Research Assistant", "Databases"),
		mk(t, timeline.KindWork, "2021-09", "2022-06", "Teaching Assistant", "Teaching"),
	}
}

// page returns a document body holding an empty timeline container.
func page() (root, container *html.Node) {
	root = element("body")
	container = NewContainer()
	root.AppendChild(element("nav"))
	root.AppendChild(container)
	return root, container
}

func childElements(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func classOf(n *html.Node) string {
	v, _ := Attr(n, "class")
	return v
}
