package main

import (
	"bytes"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderPagination(t *testing.T, data map[string]interface{}) string {
	t.Helper()
	tpl, err := template.New("pagination.html").
		Funcs(templateFuncs()).
		ParseFiles("../../web/templates/components/pagination.html")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tpl.ExecuteTemplate(&buf, "pagination", data))
	return buf.String()
}

func TestPaginationLinksCarryActiveFilters(t *testing.T) {
	out := renderPagination(t, map[string]interface{}{
		"Path":        "/dashboard",
		"CurrentPage": 2,
		"TotalPages":  3,
		"Status":      "rejected",
		"Query":       "go tips",
		"Sort":        "oldest",
	})

	// Paging a filtered view must not reset the filter.
	assert.Contains(t, out, "/dashboard?page=1&status=rejected&q=go+tips&sort=oldest")
	assert.Contains(t, out, "/dashboard?page=3&status=rejected&q=go+tips&sort=oldest")
}

func TestPaginationLinksWithoutFilters(t *testing.T) {
	out := renderPagination(t, map[string]interface{}{
		"Path":        "/admin/queue",
		"CurrentPage": 2,
		"TotalPages":  3,
	})

	assert.Contains(t, out, "/admin/queue?page=1")
	assert.Contains(t, out, "/admin/queue?page=3")
	assert.NotContains(t, out, "status=")
	assert.NotContains(t, out, "q=")
	assert.NotContains(t, out, "sort=")
}

func TestPaginationHiddenOnSinglePage(t *testing.T) {
	out := renderPagination(t, map[string]interface{}{
		"Path":        "/",
		"CurrentPage": 1,
		"TotalPages":  1,
	})
	assert.NotContains(t, out, "pagination")
}
