package handler

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dimfeld/httptreemux/v5"
	"github.com/spf13/afero"

	"github.com/mgiordano/historia/internal/config"
	"github.com/mgiordano/historia/internal/render"
	"github.com/mgiordano/historia/internal/store"
)

// App holds the shared state handlers need: the post store, the template
// renderer, the site configuration and the filesystem backing the static
// file fallback.
type App struct {
	FS       afero.Fs
	Store    *store.Store
	Renderer *render.Renderer
	Config   config.Config
}

type appHandler func(*App, http.ResponseWriter, *http.Request, map[string]string)

func wrap(app *App, h appHandler) httptreemux.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		start := time.Now()
		h(app, w, r, params)
		log.Printf("%s %s served in %v", r.Method, r.URL.Path, time.Since(start))
	}
}

// New builds the route table for the site.
func New(app *App) http.Handler {
	router := httptreemux.New()

	router.GET("/", wrap(app, page("home.html", "Principal")))
	router.GET("/section1", wrap(app, page("section1.html", "Sección 1")))
	router.GET("/section2", wrap(app, page("section2.html", "Sección 2")))
	router.GET("/section3", wrap(app, page("section3.html", "Sección 3")))
	router.GET("/blog", wrap(app, blogHandler))
	router.GET("/acerca", wrap(app, aboutHandler))
	router.GET("/admin/new_post", wrap(app, page("new_post.html", "Nuevo Post")))
	router.POST("/admin/new_post", wrap(app, createPostHandler))

	// Unrouted paths: GETs fall through to the static file server, which
	// produces the not-found response for anything else. POSTs to unknown
	// paths are a plain 404, even on paths that route for GET.
	fileServer := http.FileServer(afero.NewHttpFs(app.FS).Dir(app.Config.StaticDir))
	router.NotFoundHandler = func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	}
	router.MethodNotAllowedHandler = func(w http.ResponseWriter, r *http.Request, methods map[string]httptreemux.HandlerFunc) {
		if r.Method == http.MethodPost {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}

	return gzipHandler(router)
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

// page returns a handler rendering a static template with a fixed title.
func page(template, title string) appHandler {
	return func(app *App, w http.ResponseWriter, r *http.Request, _ map[string]string) {
		out, err := app.Renderer.Render(template, map[string]string{"title": title})
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			log.Printf("Error rendering %s: %v", template, err)
			return
		}
		writeHTML(w, out)
	}
}

func blogHandler(app *App, w http.ResponseWriter, r *http.Request, _ map[string]string) {
	posts := app.Store.Load()
	store.SortByIDDesc(posts)

	var blocks []string
	for _, p := range posts {
		blocks = append(blocks, `<div class="post"><h2>`+p.Title+`</h2><p>`+p.Content+`</p></div>`)
	}
	postsHTML := strings.Join(blocks, "\n")
	if len(blocks) == 0 {
		postsHTML = "<p>" + app.Config.EmptyMessage + "</p>"
	}

	out, err := app.Renderer.Render("blog.html", map[string]string{
		"title": "Blog",
		"posts": postsHTML,
	})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		log.Printf("Error rendering blog: %v", err)
		return
	}
	writeHTML(w, out)
}

func aboutHandler(app *App, w http.ResponseWriter, r *http.Request, _ map[string]string) {
	body, err := app.Renderer.RenderMarkdown(app.Config.AboutFile)
	if err != nil {
		if os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		log.Printf("Error rendering about page: %v", err)
		return
	}

	out, err := app.Renderer.Render("page.html", map[string]string{
		"title":   app.Config.Title,
		"content": string(body),
	})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		log.Printf("Error rendering about page: %v", err)
		return
	}
	writeHTML(w, out)
}

// createPostHandler appends a post when both fields survive trimming.
// Invalid submissions are dropped without feedback; either way the client is
// redirected back to the blog.
func createPostHandler(app *App, w http.ResponseWriter, r *http.Request, _ map[string]string) {
	if err := r.ParseForm(); err == nil {
		title := strings.TrimSpace(r.PostFormValue("title"))
		content := strings.TrimSpace(r.PostFormValue("content"))
		if title != "" && content != "" {
			if _, err := app.Store.Add(title, content); err != nil {
				log.Printf("Error saving post: %v", err)
			}
		}
	}
	http.Redirect(w, r, "/blog", http.StatusSeeOther)
}
