// Package views renders post cards and feed pages with html/template.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"feedpost/app/locale"
	"feedpost/app/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names accepted by Render.
const (
	PageFeed = "feed"
	PageShow = "show"
)

// Labels are the fixed UI strings of a card.
type Labels struct {
	Heading     string
	Placeholder string
	Publish     string
	UpdateDraft string
}

// PostCard is everything the "post" template needs.
type PostCard struct {
	ID                int
	Author            models.Author
	Avatar            Avatar
	PublishedISO      string
	PublishedLong     string
	PublishedRelative string
	Lines             []template.HTML
	Draft             string
	SubmitDisabled    bool
	ValidationMessage string
	Comments          []CommentEntry
	Labels            Labels
	SubmitAction      string
	DraftAction       string
	ReturnTo          string
}

// CommentEntry is one rendered comment with its delete control.
type CommentEntry struct {
	Key          string
	Text         string
	DeleteAction string
	DeleteLabel  string
	ReturnTo     string
}

// Page is the data of a full page render.
type Page struct {
	Lang  string
	Title string
	Cards []PostCard
}

type lineData struct {
	Key  string
	Text string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock sets the clock used for relative publication times.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// Renderer builds and renders post cards in one locale.
type Renderer struct {
	templates map[string]*template.Template
	locale    *locale.Locale
	now       func() time.Time
}

// NewRenderer parses the embedded templates.
func NewRenderer(loc *locale.Locale, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		locale:    loc,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, page := range []string{PageFeed, PageShow} {
		t, err := template.ParseFS(templateFS,
			"templates/layout.html",
			"templates/post.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parsing %s templates: %w", page, err)
		}
		r.templates[page] = t
	}
	return r, nil
}

// Locale returns the renderer's locale.
func (r *Renderer) Locale() *locale.Locale {
	return r.locale
}

// Relative formats t relative to the renderer's clock.
func (r *Renderer) Relative(t time.Time) string {
	return r.locale.Relative(t, r.now())
}

// Card builds the view of post with the given comment state. returnTo is
// the page the card's forms go back to; validation is shown under the
// comment field when not empty.
func (r *Renderer) Card(post *models.Post, state models.CommentBoxState, returnTo, validation string) (PostCard, error) {
	base := "/posts/" + strconv.Itoa(post.ID)
	card := PostCard{
		ID:     post.ID,
		Author: post.Author,
		Avatar: Avatar{
			Src: post.Author.AvatarURL,
		},
		PublishedISO:      locale.ISO(post.PublishedAt),
		PublishedLong:     r.locale.LongDate(post.PublishedAt),
		PublishedRelative: r.Relative(post.PublishedAt),
		Draft:             state.Draft,
		SubmitDisabled:    state.State == models.DraftEmpty,
		ValidationMessage: validation,
		Labels: Labels{
			Heading:     r.locale.T(locale.FormHeading),
			Placeholder: r.locale.T(locale.FormPlaceholder),
			Publish:     r.locale.T(locale.FormPublish),
			UpdateDraft: r.locale.T(locale.FormUpdateDraft),
		},
		SubmitAction: base + "/comments",
		DraftAction:  base + "/draft",
		ReturnTo:     returnTo,
	}

	for _, line := range post.Content {
		html, err := r.line(post.ID, line)
		if err != nil {
			return PostCard{}, err
		}
		if html != "" {
			card.Lines = append(card.Lines, html)
		}
	}

	deleteLabel := r.locale.T(locale.CommentDelete)
	for _, c := range state.Comments {
		card.Comments = append(card.Comments, CommentEntry{
			Key:          "comment-" + c,
			Text:         c,
			DeleteAction: base + "/comments/delete",
			DeleteLabel:  deleteLabel,
			ReturnTo:     returnTo,
		})
	}
	return card, nil
}

// line renders one content line. Kinds without a template render nothing.
func (r *Renderer) line(postID int, line models.ContentLine) (template.HTML, error) {
	var name string
	switch line.Kind {
	case models.Paragraph:
		name = "line-paragraph"
	case models.Link:
		name = "line-link"
	default:
		return "", nil
	}

	var buf bytes.Buffer
	data := lineData{Key: line.Key(postID), Text: line.Text}
	if err := r.templates[PageShow].ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s line: %w", line.Kind, err)
	}
	return template.HTML(buf.String()), nil
}

// Render writes a full page.
func (r *Renderer) Render(w io.Writer, page string, cards []PostCard) error {
	t, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	data := Page{
		Lang:  r.locale.Lang(),
		Title: r.locale.T(locale.FeedTitle),
		Cards: cards,
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// RenderCard writes a single card without the page layout.
func (r *Renderer) RenderCard(w io.Writer, card PostCard) error {
	return r.templates[PageShow].ExecuteTemplate(w, "post", card)
}

// StaticHandler serves the embedded stylesheets.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
