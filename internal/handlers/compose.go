package handlers

import (
	"io"
	"net/http"

	"inkwell/internal/api"
	"inkwell/internal/forms"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

// formFromRequest applies the posted fields to a form. For edits the form
// arrives pre-loaded with the baseline so dirty tracking works.
func formFromRequest(c *gin.Context, f *forms.PostForm) error {
	f.SetTitle(c.PostForm("title"))
	if slug := c.PostForm("slug"); slug != "" && utils.Slugify(slug) != f.Slug {
		f.SetSlug(slug)
	}
	f.Description = c.PostForm("description")
	f.Excerpt = c.PostForm("excerpt")
	f.Keywords = c.PostForm("keywords")
	f.Tags = models.ParseTags(c.PostForm("tags"))
	f.CategoryID = c.PostForm("category")
	f.IsFeatured = c.PostForm("featured") == "on"
	f.IsHot = c.PostForm("hot") == "on"
	f.IsPopular = c.PostForm("popular") == "on"

	if c.PostForm("remove_image") == "on" {
		f.ClearImage()
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		// No file selected is fine; the existing image stays.
		return nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	staged, err := forms.StageImage(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		return err
	}
	f.Image = staged
	return nil
}

// formCategories loads the category dropdown; a form page without categories
// is unusable, so failures bubble to the caller.
func (h *BlogHandler) formCategories(c *gin.Context) ([]models.Category, error) {
	return h.api.Categories(c.Request.Context())
}

func (h *BlogHandler) ShowCreate(c *gin.Context) {
	categories, err := h.formCategories(c)
	if err != nil {
		RenderError(c, http.StatusBadGateway, api.Message(err, "Could not load the editor, please try again."))
		return
	}

	Render(c, http.StatusOK, "blog/compose.html", gin.H{
		"Title":      "Write a post",
		"Form":       forms.NewPostForm(),
		"Categories": categories,
		"Action":     "/write",
	})
}

// rerenderCompose shows the form again with errors, leaving every entered
// value intact for correction.
func (h *BlogHandler) rerenderCompose(c *gin.Context, code int, f *forms.PostForm, fieldErrs map[string]string, errMsg, title, action string, post *models.Post) {
	categories, _ := h.formCategories(c)
	data := gin.H{
		"Title":      title,
		"Form":       f,
		"Errors":     fieldErrs,
		"Error":      errMsg,
		"Categories": categories,
		"Action":     action,
	}
	if post != nil {
		data["Post"] = post
	}
	Render(c, code, "blog/compose.html", data)
}

// Create handles the new-post submission: validate, pre-check the slug, then
// POST the multipart payload. The new post always enters review as pending.
func (h *BlogHandler) Create(c *gin.Context) {
	f := forms.NewPostForm()
	if err := formFromRequest(c, f); err != nil {
		h.rerenderCompose(c, http.StatusBadRequest, f, nil, err.Error(), "Write a post", "/write", nil)
		return
	}

	if f.Slug != "" {
		if available, err := h.api.CheckSlug(c.Request.Context(), f.Slug); err == nil && !available {
			f.SlugConflict = true
		}
	}

	if errs := f.Validate(forms.VariantCreate); len(errs) > 0 {
		h.rerenderCompose(c, http.StatusBadRequest, f, errs, "", "Write a post", "/write", nil)
		return
	}

	body, contentType, err := f.MultipartBody()
	if err != nil {
		h.rerenderCompose(c, http.StatusInternalServerError, f, nil, "Could not assemble your submission, please try again.", "Write a post", "/write", nil)
		return
	}

	if _, err := h.authed(c).CreatePost(c.Request.Context(), body, contentType); err != nil {
		if api.IsUnauthorized(err) {
			middleware.ClearSession(c)
			c.Redirect(http.StatusFound, "/login")
			return
		}
		h.rerenderCompose(c, http.StatusBadGateway, f, nil, api.Message(err, "Publishing failed, please try again."), "Write a post", "/write", nil)
		return
	}

	h.invalidatePost(f.Slug)
	Flash(c, "Your post was submitted and is waiting for review.")
	c.Redirect(http.StatusFound, "/dashboard")
}

// loadEditable fetches a post for editing and enforces the ownership gate:
// only the author, and only while the post is pending or rejected. Returns
// nil after rendering the blocking page itself.
func (h *BlogHandler) loadEditable(c *gin.Context) *models.Post {
	user := middleware.UserFrom(c)
	id := c.Param("id")

	post, err := h.authed(c).GetForEdit(c.Request.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			Flash(c, "That post could not be found.")
			c.Redirect(http.StatusFound, "/dashboard")
			return nil
		}
		if api.IsUnauthorized(err) {
			middleware.ClearSession(c)
			c.Redirect(http.StatusFound, "/login")
			return nil
		}
		RenderError(c, http.StatusBadGateway, api.Message(err, "Could not load the post, please try again."))
		return nil
	}

	if !post.OwnedBy(user) {
		RenderError(c, http.StatusForbidden, "You can only edit your own posts.")
		return nil
	}
	if !post.Status.AuthorEditable() {
		RenderError(c, http.StatusForbidden, "Published posts can no longer be edited.")
		return nil
	}
	return post
}

func (h *BlogHandler) ShowEdit(c *gin.Context) {
	post := h.loadEditable(c)
	if post == nil {
		return
	}

	categories, err := h.formCategories(c)
	if err != nil {
		RenderError(c, http.StatusBadGateway, api.Message(err, "Could not load the editor, please try again."))
		return
	}

	Render(c, http.StatusOK, "blog/compose.html", gin.H{
		"Title":      "Edit post",
		"Form":       forms.FormFromPost(post),
		"Post":       post,
		"Categories": categories,
		"Action":     "/dashboard/posts/" + post.ID + "/edit",
	})
}

// Update resubmits an edited post. Whatever its prior status, the edit sends
// it back to pending for re-review; a rejected post loses its rejection
// reason by going through here.
func (h *BlogHandler) Update(c *gin.Context) {
	post := h.loadEditable(c)
	if post == nil {
		return
	}
	action := "/dashboard/posts/" + post.ID + "/edit"

	f := forms.FormFromPost(post)
	if err := formFromRequest(c, f); err != nil {
		h.rerenderCompose(c, http.StatusBadRequest, f, nil, err.Error(), "Edit post", action, post)
		return
	}

	if !f.Dirty() {
		h.rerenderCompose(c, http.StatusBadRequest, f, nil, "Nothing changed yet.", "Edit post", action, post)
		return
	}

	if f.Slug != post.Slug && f.Slug != "" {
		if available, err := h.api.CheckSlug(c.Request.Context(), f.Slug); err == nil && !available {
			f.SlugConflict = true
		}
	}

	if errs := f.Validate(forms.VariantEdit); len(errs) > 0 {
		h.rerenderCompose(c, http.StatusBadRequest, f, errs, "", "Edit post", action, post)
		return
	}

	body, contentType, err := f.MultipartBody()
	if err != nil {
		h.rerenderCompose(c, http.StatusInternalServerError, f, nil, "Could not assemble your submission, please try again.", "Edit post", action, post)
		return
	}

	if _, err := h.authed(c).UpdatePost(c.Request.Context(), post.ID, body, contentType); err != nil {
		if api.IsUnauthorized(err) {
			middleware.ClearSession(c)
			c.Redirect(http.StatusFound, "/login")
			return
		}
		h.rerenderCompose(c, http.StatusBadGateway, f, nil, api.Message(err, "Saving failed, please try again."), "Edit post", action, post)
		return
	}

	h.invalidatePost(post.Slug)
	if f.Slug != post.Slug {
		h.invalidatePost(f.Slug)
	}
	Flash(c, "Your changes were submitted and are waiting for review.")
	c.Redirect(http.StatusFound, "/dashboard")
}

// Delete removes the author's own non-published post. Destructive, so no
// optimistic update: the dashboard only changes after the API confirms.
func (h *BlogHandler) Delete(c *gin.Context) {
	post := h.loadEditable(c)
	if post == nil {
		return
	}

	if err := h.authed(c).DeletePost(c.Request.Context(), post.ID); err != nil {
		Flash(c, api.Message(err, "Deleting failed, please try again."))
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	h.invalidatePost(post.Slug)
	Flash(c, "Post deleted.")
	c.Redirect(http.StatusFound, "/dashboard")
}

// Resubmit asks for re-review of a rejected post without content changes.
func (h *BlogHandler) Resubmit(c *gin.Context) {
	post := h.loadEditable(c)
	if post == nil {
		return
	}

	if _, err := models.Transition(post.Status, models.ActionResubmit, middleware.UserFrom(c)); err != nil {
		RenderError(c, http.StatusForbidden, err.Error())
		return
	}

	if err := h.authed(c).RequestReapproval(c.Request.Context(), post.ID); err != nil {
		Flash(c, api.Message(err, "Resubmitting failed, please try again."))
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	Flash(c, "Your post was resubmitted for review.")
	c.Redirect(http.StatusFound, "/dashboard")
}

// CheckSlug answers the editor's availability probe. The browser debounces
// keystrokes for 500ms before calling here, so every request that arrives is
// worth forwarding.
func (h *BlogHandler) CheckSlug(c *gin.Context) {
	slug := utils.Slugify(c.Query("slug"))
	if slug == "" {
		c.JSON(http.StatusOK, gin.H{"slug": slug, "available": false})
		return
	}

	available, err := h.api.CheckSlug(c.Request.Context(), slug)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": api.Message(err, "Slug check failed")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slug": slug, "available": available})
}

// Preview renders the author's markdown to sanitized HTML for the editor's
// preview pane.
func (h *BlogHandler) Preview(c *gin.Context) {
	source := c.PostForm("source")
	c.JSON(http.StatusOK, gin.H{"html": utils.RenderMarkdown(source)})
}
