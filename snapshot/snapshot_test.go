package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPages(t *testing.T) {
	pages := DefaultPages("")
	require.Len(t, pages, 2)
	assert.Equal(t, "/explore", pages[0].Path)
	assert.Equal(t, "/visualizations", pages[1].Path)

	pages = DefaultPages("?brand=Dell&screen=14-16")
	assert.Equal(t, "/explore?brand=Dell&screen=14-16", pages[0].Path)
	assert.Equal(t, "/visualizations?brand=Dell&screen=14-16", pages[1].Path)
}

func TestPageURL(t *testing.T) {
	got, err := pageURL("http://localhost:8501", "/explore?brand=HP")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8501/explore?brand=HP", got)

	got, err = pageURL("http://dash.internal:9000/app/", "/visualizations")
	require.NoError(t, err)
	assert.Equal(t, "http://dash.internal:9000/visualizations", got)

	_, err = pageURL("localhost:8501", "/explore")
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "explore.png", fileName(Page{Name: "explore"}))
	assert.Equal(t, "dell_14-16.png", fileName(Page{Name: "dell 14-16"}))
	assert.Equal(t, "page.png", fileName(Page{}))
}

func TestFindChromeBinaryHonoursEnv(t *testing.T) {
	t.Setenv("CHROME_BIN", "/opt/custom/chrome")
	assert.Equal(t, "/opt/custom/chrome", findChromeBinary())
}
