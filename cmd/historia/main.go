package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/mgiordano/historia/internal/config"
	"github.com/mgiordano/historia/internal/handler"
	"github.com/mgiordano/historia/internal/render"
	"github.com/mgiordano/historia/internal/store"
)

func main() {
	var settingsFile string
	flag.StringVar(&settingsFile, "f", "settings.json", "Path to the settings file")
	flag.StringVar(&settingsFile, "settings", "settings.json", "Path to the settings file")

	var title string
	var content string
	flag.StringVar(&title, "title", "", "Post title (post command)")
	flag.StringVar(&content, "content", "", "Post content (post command)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: historia <command> [options]\n")
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  serve  - Run the web server\n")
		fmt.Fprintf(os.Stderr, "  post   - Add a blog post from the command line\n")
		fmt.Fprintf(os.Stderr, "  list   - Print stored blog posts, newest first\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "serve":
		if err := flag.CommandLine.Parse(os.Args[2:]); err != nil {
			os.Exit(1)
		}
		serve(settingsFile)
	case "post":
		if err := flag.CommandLine.Parse(os.Args[2:]); err != nil {
			os.Exit(1)
		}
		addPost(settingsFile, title, content)
	case "list":
		if err := flag.CommandLine.Parse(os.Args[2:]); err != nil {
			os.Exit(1)
		}
		list(settingsFile)
	case "-h", "--help":
		flag.Usage()
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		flag.Usage()
		os.Exit(1)
	}
}

func serve(settingsFile string) {
	cfg, err := config.Load(settingsFile)
	if err != nil {
		log.Fatal(err)
	}

	fs := afero.NewOsFs()
	renderer := render.New(fs, cfg.TemplatesDir)
	if err := renderer.Watch(); err != nil {
		log.Printf("Template watcher disabled: %v", err)
	}
	defer renderer.Close()

	h := handler.New(&handler.App{
		FS:       fs,
		Store:    store.New(fs, cfg.PostsFile),
		Renderer: renderer,
		Config:   cfg,
	})

	log.Printf("Listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, h); err != nil {
		log.Fatal(err)
	}
}

func addPost(settingsFile, title, content string) {
	cfg, err := config.Load(settingsFile)
	if err != nil {
		log.Fatal(err)
	}

	// Same validation as the web form: both fields required after trimming.
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		fmt.Fprintln(os.Stderr, "Both -title and -content are required")
		os.Exit(1)
	}

	s := store.New(afero.NewOsFs(), cfg.PostsFile)
	post, err := s.Add(title, content)
	if err != nil {
		log.Fatalf("Failed to save post: %v", err)
	}
	fmt.Printf("Added post %d: %s\n", post.ID, post.Title)
}

func list(settingsFile string) {
	cfg, err := config.Load(settingsFile)
	if err != nil {
		log.Fatal(err)
	}

	posts := store.New(afero.NewOsFs(), cfg.PostsFile).Load()
	if len(posts) == 0 {
		fmt.Println("No posts.")
		return
	}

	store.SortByIDDesc(posts)
	for _, p := range posts {
		fmt.Printf("%d: %s\n   %s\n", p.ID, p.Title, p.Content)
	}
}
