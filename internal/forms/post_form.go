package forms

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/utils"
)

// Variant distinguishes the two authoring forms; they share everything but
// the title length floor.
type Variant int

const (
	VariantCreate Variant = iota
	VariantEdit
)

// EmptyEditorHTML is the canonical markup a rich-text editor leaves behind
// when the author typed nothing.
const EmptyEditorHTML = "<p><br></p>"

const (
	titleMinCreate = 10
	titleMinEdit   = 5
)

// snapshot is the comparable view of a form used for dirty tracking.
type snapshot struct {
	Title       string
	Slug        string
	Description string
	Excerpt     string
	Keywords    string
	Tags        string
	CategoryID  string
	IsFeatured  bool
	IsHot       bool
	IsPopular   bool
}

// PostForm owns all field state for authoring a post: slug derivation, tag
// management, image staging, validation and the multipart payload the API
// expects. One instance backs one form render/submit cycle.
type PostForm struct {
	Title       string
	Slug        string
	Description string // rich HTML body
	Excerpt     string
	Keywords    string
	Tags        models.TagList
	CategoryID  string
	IsFeatured  bool
	IsHot       bool
	IsPopular   bool
	Image       *StagedImage

	// SlugConflict is set after a check-slug round trip reported the slug
	// as taken; it blocks submission until the slug changes.
	SlugConflict bool

	slugTouched bool
	baseline    *snapshot
}

func NewPostForm() *PostForm {
	return &PostForm{}
}

// FormFromPost loads an edit form from an existing post and records the
// baseline used for dirty tracking.
func FormFromPost(p *models.Post) *PostForm {
	f := &PostForm{
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Excerpt:     p.Excerpt,
		Keywords:    p.Keywords,
		Tags:        append(models.TagList{}, p.Tags...),
		CategoryID:  p.Category.ID,
		IsFeatured:  p.IsFeatured,
		IsHot:       p.IsHot,
		IsPopular:   p.IsPopular,
		// Loading an existing slug counts as touched: editing the title of
		// an already-slugged post must not silently change its URL.
		slugTouched: p.Slug != "",
	}
	base := f.snap()
	f.baseline = &base
	return f
}

func (f *PostForm) snap() snapshot {
	return snapshot{
		Title:       f.Title,
		Slug:        f.Slug,
		Description: f.Description,
		Excerpt:     f.Excerpt,
		Keywords:    f.Keywords,
		Tags:        f.Tags.String(),
		CategoryID:  f.CategoryID,
		IsFeatured:  f.IsFeatured,
		IsHot:       f.IsHot,
		IsPopular:   f.IsPopular,
	}
}

// SetTitle updates the title and, while the slug field is untouched, derives
// the slug from it.
func (f *PostForm) SetTitle(title string) {
	f.Title = title
	if !f.slugTouched {
		f.setSlugValue(utils.Slugify(title))
	}
}

// SetSlug records a manual slug edit. The same slugify transform re-runs on
// the input so the field can never hold an unsafe value.
func (f *PostForm) SetSlug(slug string) {
	f.slugTouched = true
	f.setSlugValue(utils.Slugify(slug))
}

func (f *PostForm) setSlugValue(slug string) {
	if slug != f.Slug {
		f.SlugConflict = false
	}
	f.Slug = slug
}

func (f *PostForm) AddTag(tag string)    { f.Tags.Add(tag) }
func (f *PostForm) RemoveTag(tag string) { f.Tags.Remove(tag) }

// ClearImage discards the staged cover image, preview included. The next
// MultipartBody carries no image part, so the server-side image is untouched.
func (f *PostForm) ClearImage() {
	f.Image.Clear()
	f.Image = nil
}

// Dirty reports whether any field differs from the loaded baseline. Create
// forms have no baseline and are always submittable; edit forms stay
// disabled until something changed. A freshly staged image counts.
func (f *PostForm) Dirty() bool {
	if f.baseline == nil {
		return true
	}
	return f.snap() != *f.baseline || f.Image != nil
}

// EmptyDescription reports whether the body is blank or the editor's
// canonical empty markup.
func EmptyDescription(html string) bool {
	trimmed := strings.TrimSpace(html)
	return trimmed == "" || trimmed == EmptyEditorHTML
}

// Validate runs the client-side rules and returns field -> message for every
// violation. An empty map means the form may be submitted.
func (f *PostForm) Validate(variant Variant) map[string]string {
	errs := make(map[string]string)

	title := strings.TrimSpace(f.Title)
	min := titleMinCreate
	if variant == VariantEdit {
		min = titleMinEdit
	}
	switch {
	case title == "":
		errs["title"] = "Title is required"
	case len([]rune(title)) < min:
		errs["title"] = "Title must be at least " + strconv.Itoa(min) + " characters"
	}

	if EmptyDescription(f.Description) {
		errs["description"] = "Content is required"
	}

	if f.CategoryID == "" {
		errs["category"] = "Please select a category"
	}

	if !utils.ValidSlug(f.Slug) {
		errs["slug"] = "Slug may only contain lowercase letters, numbers and hyphens"
	} else if f.SlugConflict {
		errs["slug"] = "This slug is already taken"
	}

	return errs
}

// MultipartBody assembles the submission payload for create (POST) and
// update (PUT). Status is always forced back to pending: every author
// submission re-enters review regardless of the post's prior state.
func (f *PostForm) MultipartBody() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       strings.TrimSpace(f.Title),
		"slug":        f.Slug,
		"description": f.Description,
		"excerpt":     f.Excerpt,
		"category":    f.CategoryID,
		"tags":        f.Tags.String(),
		"keywords":    f.Keywords,
		"isFeatured":  strconv.FormatBool(f.IsFeatured),
		"isHot":       strconv.FormatBool(f.IsHot),
		"isPopular":   strconv.FormatBool(f.IsPopular),
		"status":      string(models.StatusPending),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	if f.Image != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="image"; filename="`+escapeQuotes(f.Image.Name)+`"`)
		header.Set("Content-Type", f.Image.MIME)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Image.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
