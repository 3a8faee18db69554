package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/Zachkp/journey/internal/render"
	"github.com/Zachkp/journey/internal/timeline"
)

// timeNow resolves "present" end dates; tests pin it.
var timeNow = time.Now

const (
	defaultViewportWidth = 1280
	viewportHint         = "Sec-CH-Viewport-Width"
)

// viewportWidth reads the width the browser reported: the HTMX "width"
// parameter first, then the client hint headers.
func viewportWidth(c *gin.Context) int {
	for _, v := range []string{c.Query("width"), c.GetHeader(viewportHint), c.GetHeader("Viewport-Width")} {
		if w, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && w > 0 {
			return w
		}
	}
	return defaultViewportWidth
}

func timelineOptions() render.Options {
	return render.Options{Config: layoutConfig, Now: timeNow, Interactive: true}
}

// renderTimeline builds a fresh container for width and serialises it.
func renderTimeline(width int) (template.HTML, render.Mode, error) {
	container := render.NewContainer()
	res := render.Generate(container, journey, width, timelineOptions())
	out, err := render.Outer(container)
	if err != nil {
		return "", res.Mode, err
	}
	return template.HTML(out), res.Mode, nil
}

func setupTimelineRoutes(r *gin.Engine) {
	// Timeline fragment, swapped in by HTMX on load and after resizing
	r.GET("/timeline", func(c *gin.Context) {
		fragment, mode, err := renderTimeline(viewportWidth(c))
		if err != nil {
			log.Printf("Error rendering timeline: %v", err)
			c.String(http.StatusInternalServerError, "timeline unavailable")
			return
		}
		c.Header("Accept-CH", viewportHint)
		c.Header("Vary", viewportHint)
		c.Header("X-Timeline-Mode", mode.String())
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fragment))
	})

	// Layout as JSON, for debugging and other front ends
	r.GET("/api/timeline", func(c *gin.Context) {
		width := viewportWidth(c)
		mode := render.ModeFor(width)
		if mode == render.Mobile {
			c.JSON(http.StatusOK, gin.H{
				"mode":    mode.String(),
				"width":   width,
				"entries": timeline.SortByStartDesc(journey),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"mode":   mode.String(),
			"width":  width,
			"layout": timeline.Build(journey, layoutConfig, timeNow()),
		})
	})
}

// exportTimeline writes a standalone page holding the timeline rendered for
// width. With expanded set every card is opened on the server and the page
// needs no scripts; otherwise cards expand in the browser as on the site.
func exportTimeline(path string, width int, expanded bool) error {
	doc, body := exportDocument(!expanded)
	d := render.NewDispatcher(body, render.ContainerID, journey, render.Options{
		Config:      layoutConfig,
		Now:         timeNow,
		Interactive: !expanded,
	})
	d.Logger = log.Default()
	d.Marquee = render.NewRegistry()
	res := d.Load(width)
	if !res.Rendered {
		return fmt.Errorf("no timeline container in export document")
	}
	if expanded && res.Board != nil {
		for _, id := range res.Board.CardIDs() {
			d.Dispatch(id, timeline.Focus)
		}
		log.Printf("Expanded %d cards, %d tag strips overflow", len(res.Board.CardIDs()), d.Marquee.Len())
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString("<!DOCTYPE html>\n"); err != nil {
		return err
	}
	return html.Render(f, doc)
}

func exportDocument(scripts bool) (doc, body *html.Node) {
	el := func(a atom.Atom, attrs ...html.Attribute) *html.Node {
		return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a, Attr: attrs}
	}
	doc = el(atom.Html, html.Attribute{Key: "lang", Val: "en"})
	head := el(atom.Head)
	head.AppendChild(el(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	title := el(atom.Title)
	title.AppendChild(&html.Node{Type: html.TextNode, Data: "Journey"})
	head.AppendChild(title)
	head.AppendChild(el(atom.Link,
		html.Attribute{Key: "rel", Val: "stylesheet"},
		html.Attribute{Key: "href", Val: "static/timeline.css"}))
	if scripts {
		head.AppendChild(el(atom.Script, html.Attribute{Key: "src", Val: "static/journey.js"}))
		head.AppendChild(el(atom.Script,
			html.Attribute{Key: "defer", Val: ""},
			html.Attribute{Key: "src", Val: "https://unpkg.com/alpinejs@3.14.1/dist/cdn.min.js"}))
	}
	body = el(atom.Body)
	body.AppendChild(render.NewContainer())
	doc.AppendChild(head)
	doc.AppendChild(body)
	return doc, body
}
