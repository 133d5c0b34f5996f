package store

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/afero"
)

// Post is a single blog entry. Posts are only ever created; there is no
// update or delete path.
type Post struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Store owns the on-disk post collection. The whole collection is read and
// written as a single JSON array; there is no locking, so concurrent Add
// calls can lose updates (last writer wins).
type Store struct {
	fs   afero.Fs
	path string
}

// New creates a store backed by the given filesystem and file path.
func New(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Load reads the full collection. A missing or unreadable file, or one that
// fails to parse, yields an empty collection rather than an error.
func (s *Store) Load() []Post {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil
	}
	var posts []Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil
	}
	return posts
}

// Save overwrites the backing file with the full collection.
func (s *Store) Save(posts []Post) error {
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding posts: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0644); err != nil {
		return fmt.Errorf("writing posts file: %w", err)
	}
	return nil
}

// Add appends a new post with a freshly assigned id and persists the
// collection. Title and content are stored as given; validation happens at
// the call site.
func (s *Store) Add(title, content string) (Post, error) {
	posts := s.Load()
	post := Post{ID: NextID(posts), Title: title, Content: content}
	if err := s.Save(append(posts, post)); err != nil {
		return Post{}, err
	}
	return post, nil
}

// NextID returns max(existing ids)+1, or 1 for an empty collection.
func NextID(posts []Post) int {
	max := 0
	for _, p := range posts {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// SortByIDDesc orders posts newest-first for display.
func SortByIDDesc(posts []Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID > posts[j].ID
	})
}
