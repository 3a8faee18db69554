package main

import (
	"embed"
	"flag"
	"html/template"
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/Zachkp/journey/internal/render"
	"github.com/Zachkp/journey/internal/timeline"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed data/timeline.yaml
var defaultTimeline []byte

var (
	journey      []timeline.Entry
	layoutConfig = timeline.DefaultConfig()
)

func main() {
	exportPath := flag.String("export", "", "write a standalone timeline page to this file and exit")
	exportWidth := flag.Int("width", defaultViewportWidth, "viewport width used with -export")
	exportExpanded := flag.Bool("expanded", false, "with -export, open every card instead of shipping scripts")
	flag.Parse()

	if err := loadJourney(os.Getenv("TIMELINE_FILE"), os.Getenv("LAYOUT_FILE")); err != nil {
		log.Fatal("Failed to load timeline: ", err)
	}
	log.Printf("Loaded %d timeline entries", len(journey))

	if *exportPath != "" {
		if err := exportTimeline(*exportPath, *exportWidth, *exportExpanded); err != nil {
			log.Fatal("Failed to export timeline: ", err)
		}
		log.Printf("Timeline written to %s (width %d)", *exportPath, *exportWidth)
		return
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "portfolio.db"
	}
	if err := initDB(dbPath); err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer db.Close()

	initAdminToken()
	initVisitorTracking()

	r := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}

// loadJourney reads the timeline entries and layout tuning. Empty paths fall
// back to the embedded entries and the default layout.
func loadJourney(timelineFile, layoutFile string) error {
	var err error
	if timelineFile != "" {
		journey, err = timeline.LoadFile(timelineFile)
	} else {
		journey, err = timeline.Parse(defaultTimeline)
	}
	if err != nil {
		return err
	}
	layoutConfig, err = timeline.LoadConfig(layoutFile)
	return err
}

func loadTemplates() *template.Template {
	funcs := template.FuncMap{
		"ago":   humanize.Time,
		"comma": humanize.Comma,
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

func setupRouter() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(loadTemplates())
	r.Use(visitorTrackingMiddleware())

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	// Home page route
	r.GET("/", func(c *gin.Context) {
		width := viewportWidth(c)
		fragment, mode, err := renderTimeline(width)
		if err != nil {
			log.Printf("Error rendering timeline: %v", err)
		}
		c.Header("Accept-CH", viewportHint)
		c.HTML(http.StatusOK, "index.html", gin.H{
			"aboutMeContent": AboutMe,
			"projects":       Projects,
			"timeline":       fragment,
			"mode":           mode.String(),
			"breakpoint":     render.Breakpoint,
		})
	})

	// HTMX Contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})

	setupTimelineRoutes(r)
	setupContactRoutes(r)
	setupAdminRoutes(r)
	return r
}
