// Package post reads and writes Jekyll-style Markdown posts with YAML
// frontmatter.
package post

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alkime/quill/internal/apperr"
	"github.com/alkime/quill/internal/comments"
	"gopkg.in/yaml.v3"
)

const (
	// Ext is the Markdown file extension.
	Ext = ".md"
	// DateLayout is the frontmatter date format (local time, seconds).
	DateLayout = "2006-01-02 15:04:05"
	// Layout is the Jekyll layout assigned to new posts.
	Layout = "post"
)

// Store is a flat directory of Markdown posts.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory need not exist yet.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store root.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the on-disk path for name.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid post name %q: %w", name, apperr.ErrNotFound)
	}

	return filepath.Join(s.dir, name), nil
}

// List returns the names of Markdown files in the store, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts in %s: %w", s.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Ext) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

// Load reads and splits a post.
func (s *Store) Load(name string) (*Post, error) {
	data, err := s.read(name)
	if err != nil {
		return nil, err
	}

	p, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	p.Name = name

	return p, nil
}

// AppendComments re-reads the post, appends a Comments section and replaces
// the file atomically. Appending no comments leaves the file untouched.
func (s *Store) AppendComments(name string, cs []comments.Comment) error {
	p, err := s.Load(name)
	if err != nil {
		return err
	}

	if len(cs) == 0 {
		return nil
	}

	path, err := s.Path(name)
	if err != nil {
		return err
	}

	return writeAtomic(path, []byte(RenderComments(p, cs)))
}

// frontmatter is the metadata written for new posts, in output order.
type frontmatter struct {
	Layout     string             `yaml:"layout"`
	Title      string             `yaml:"title"`
	Date       string             `yaml:"date"`
	AIComments []comments.Comment `yaml:"ai_comments"`
}

// PostPath returns {dir}/{YYYY-MM-DD}-{slug}.md for title on now's date.
func PostPath(dir, title string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%s%s", now.Format(time.DateOnly), Slug(title), Ext))
}

// Create writes a new post with generated comments in its frontmatter and
// returns its path. An existing file at that path is overwritten.
func (s *Store) Create(title, body string, cs []comments.Comment, now time.Time) (string, error) {
	if Slug(title) == "" {
		return "", fmt.Errorf("%w: title %q has no usable characters", apperr.ErrEmptyContent, title)
	}

	if cs == nil {
		cs = []comments.Comment{}
	}

	content, err := renderNew(frontmatter{
		Layout:     Layout,
		Title:      title,
		Date:       now.Format(DateLayout),
		AIComments: cs,
	}, body)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create posts directory %s: %w", s.dir, err)
	}

	path := PostPath(s.dir, title, now)
	if err := writeAtomic(path, content); err != nil {
		return "", err
	}

	return path, nil
}

func renderNew(fm frontmatter, body string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	buf.WriteString(delimiter + "\n\n")
	buf.WriteString(strings.TrimSpace(body))
	buf.WriteString("\n")

	return buf.Bytes(), nil
}

func (s *Store) read(name string) ([]byte, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("post %s: %w", name, apperr.ErrNotFound)
		}

		return nil, fmt.Errorf("failed to read post %s: %w", name, err)
	}

	return data, nil
}

// writeAtomic writes content to a temp file in the target directory, syncs
// it and renames it over path.
func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".quill-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	success = true

	return nil
}
