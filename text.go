package main

// Project is a card in the projects section of the home page.
type Project struct {
	Name        string
	Description string
	URL         string
	Tags        []string
}

var (
	AboutMe = `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
	Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
	different language, experimenting with tools, or solving tricky problems.
	The timeline below is drawn like a git history: every job and every course branches off the main line and merges back when it ends.`

	Projects = []Project{
		{
			Name:        "Inbox TUI",
			Description: "A terminal email client with fuzzy finding over folders and threads.",
			Tags:        []string{"Go", "Bubble Tea", "IMAP"},
		},
		{
			Name:        "Terminal Music",
			Description: "Streams YouTube Music from the command line with a keyboard-driven player.",
			Tags:        []string{"Go", "TUI", "mpv"},
		},
		{
			Name:        "Game Recommender",
			Description: "Content-based recommendations using TF-IDF vectors and cosine similarity, with filters on reviews and ratings.",
			Tags:        []string{"Python", "scikit-learn", "Data Viz"},
		},
		{
			Name:        "Journey",
			Description: "This site: a gin server that lays out the career timeline as lanes of cards and swaps it in with HTMX as the window resizes.",
			Tags:        []string{"Go", "Gin", "HTMX", "SQLite"},
		},
	}
)
