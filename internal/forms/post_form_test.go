package forms

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTitleDerivesSlug(t *testing.T) {
	f := NewPostForm()

	f.SetTitle("My First Post")
	assert.Equal(t, "my-first-post", f.Slug)

	f.SetTitle("My First Post, Revised!")
	assert.Equal(t, "my-first-post-revised", f.Slug)
}

func TestManualSlugStopsDerivation(t *testing.T) {
	f := NewPostForm()
	f.SetTitle("My First Post")

	f.SetSlug("Custom Slug Here")
	assert.Equal(t, "custom-slug-here", f.Slug, "manual input is slugified too")

	f.SetTitle("A Completely Different Title")
	assert.Equal(t, "custom-slug-here", f.Slug, "title edits must not override a touched slug")
}

func TestSlugConflictClearsOnChange(t *testing.T) {
	f := NewPostForm()
	f.SetSlug("taken-slug")
	f.SlugConflict = true

	// Re-setting the same slug keeps the conflict.
	f.SetSlug("taken-slug")
	assert.True(t, f.SlugConflict)

	f.SetSlug("fresh-slug")
	assert.False(t, f.SlugConflict)
}

func TestFormFromPostTreatsSlugAsTouched(t *testing.T) {
	post := &models.Post{
		Title:  "Existing Post Title",
		Slug:   "existing-post-title",
		Status: models.StatusRejected,
	}
	f := FormFromPost(post)

	f.SetTitle("A Renamed Post Title")
	assert.Equal(t, "existing-post-title", f.Slug, "editing must not silently change a live URL")
}

func TestDirtyTracking(t *testing.T) {
	assert.True(t, NewPostForm().Dirty(), "create forms have no baseline")

	post := &models.Post{
		Title:       "Existing Post Title",
		Slug:        "existing-post-title",
		Description: "<p>body</p>",
		Tags:        models.TagList{"go"},
		Category:    models.Category{ID: "c1"},
	}
	f := FormFromPost(post)
	assert.False(t, f.Dirty())

	f.SetTitle("Existing Post Title Updated")
	assert.True(t, f.Dirty())

	f.SetTitle("Existing Post Title")
	assert.False(t, f.Dirty(), "reverting the change makes the form clean again")

	f.AddTag("web")
	assert.True(t, f.Dirty())
	f.RemoveTag("web")
	assert.False(t, f.Dirty())

	f.Image = &StagedImage{Name: "x.png", MIME: "image/png", Data: []byte{1}}
	assert.True(t, f.Dirty(), "a staged image alone makes the form dirty")

	f.ClearImage()
	assert.False(t, f.Dirty(), "discarding the staged image reverts to the baseline")
}

func TestClearImageDropsMultipartFilePart(t *testing.T) {
	f := NewPostForm()
	f.SetTitle("My First Post")
	f.CategoryID = "c1"

	img, err := StageImage("cover.png", "image/png", []byte{0x89})
	require.NoError(t, err)
	f.Image = img

	f.ClearImage()
	assert.Nil(t, f.Image)

	body, contentType, err := f.MultipartBody()
	require.NoError(t, err)

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	form, err := multipart.NewReader(bytes.NewReader(body), params["boundary"]).ReadForm(1 << 20)
	require.NoError(t, err)
	assert.Empty(t, form.File["image"], "a discarded image must not be uploaded")
}

func TestValidateCreate(t *testing.T) {
	f := NewPostForm()
	errs := f.Validate(VariantCreate)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "description")
	assert.Contains(t, errs, "category")
	assert.Contains(t, errs, "slug")

	f.SetTitle("Short")
	errs = f.Validate(VariantCreate)
	assert.Contains(t, errs["title"], "10")

	f.SetTitle("Long Enough Title")
	f.Description = "<p>real content</p>"
	f.CategoryID = "c1"
	errs = f.Validate(VariantCreate)
	assert.Empty(t, errs)
}

func TestValidateEditTitleFloor(t *testing.T) {
	f := NewPostForm()
	f.SetTitle("Short")
	f.Description = "<p>real content</p>"
	f.CategoryID = "c1"

	// Five runes pass on edit but fail on create.
	assert.Empty(t, f.Validate(VariantEdit))
	assert.Contains(t, f.Validate(VariantCreate), "title")
}

func TestValidateEmptyEditorMarkup(t *testing.T) {
	f := NewPostForm()
	f.SetTitle("A Real Post Title")
	f.CategoryID = "c1"
	f.Description = "<p><br></p>"

	errs := f.Validate(VariantCreate)
	assert.Contains(t, errs, "description")

	assert.True(t, EmptyDescription("  <p><br></p>  "))
	assert.True(t, EmptyDescription(""))
	assert.False(t, EmptyDescription("<p>text</p>"))
}

func TestValidateSlugConflict(t *testing.T) {
	f := NewPostForm()
	f.SetTitle("A Real Post Title")
	f.Description = "<p>body</p>"
	f.CategoryID = "c1"
	f.SlugConflict = true

	errs := f.Validate(VariantCreate)
	assert.Contains(t, errs["slug"], "taken")
}

func TestMultipartBody(t *testing.T) {
	f := NewPostForm()
	f.SetTitle("My First Post")
	f.Description = "<p>body</p>"
	f.Excerpt = "A short excerpt"
	f.CategoryID = "c1"
	f.Tags = models.TagList{"go", "web"}
	f.IsFeatured = true
	f.Image = &StagedImage{Name: "cover.png", MIME: "image/png", Data: []byte{0x89, 0x50}}

	body, contentType, err := f.MultipartBody()
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)

	value := func(name string) string {
		vals := form.Value[name]
		require.Len(t, vals, 1, "field %s", name)
		return vals[0]
	}
	assert.Equal(t, "My First Post", value("title"))
	assert.Equal(t, "my-first-post", value("slug"))
	assert.Equal(t, "go,web", value("tags"))
	assert.Equal(t, "c1", value("category"))
	assert.Equal(t, "true", value("isFeatured"))
	assert.Equal(t, "false", value("isHot"))
	assert.Equal(t, "pending", value("status"), "submissions always enter review as pending")

	files := form.File["image"]
	require.Len(t, files, 1)
	assert.Equal(t, "cover.png", files[0].Filename)
	assert.Equal(t, "image/png", files[0].Header.Get("Content-Type"))

	file, err := files[0].Open()
	require.NoError(t, err)
	defer file.Close()
	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50}, data)
}

func TestMultipartBodyWithoutImage(t *testing.T) {
	f := NewPostForm()
	f.SetTitle("My First Post")
	f.CategoryID = "c1"

	body, contentType, err := f.MultipartBody()
	require.NoError(t, err)

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)

	form, err := multipart.NewReader(bytes.NewReader(body), params["boundary"]).ReadForm(1 << 20)
	require.NoError(t, err)
	assert.Empty(t, form.File["image"])
	assert.Equal(t, "pending", form.Value["status"][0])
}
