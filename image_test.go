package medium2md_test

import (
	"testing"

	"github.com/fwojciec/medium2md"
	"github.com/stretchr/testify/assert"
)

func TestFindImageRefs(t *testing.T) {
	t.Parallel()

	text := "![](https://miro.medium.com/1*a.png)\n" +
		"![diagram](https://cdn.example.com/b.JPG)\n" +
		"![](https://example.com/c.svg)\n" +
		"![](http://example.com/d.jpeg) and again ![](https://miro.medium.com/1*a.png)\n" +
		"![](/relative/e.gif)\n" +
		"[link](https://example.com/f.png)"

	t.Run("matches empty-alt images with supported extensions", func(t *testing.T) {
		t.Parallel()

		refs := medium2md.FindImageRefs(text, false)

		assert.Equal(t, []medium2md.ImageRef{
			{URL: "https://miro.medium.com/1*a.png"},
			{URL: "http://example.com/d.jpeg"},
			{URL: "https://miro.medium.com/1*a.png"},
		}, refs)
	})

	t.Run("any alt widens the match", func(t *testing.T) {
		t.Parallel()

		refs := medium2md.FindImageRefs(text, true)

		assert.Len(t, refs, 4)
		assert.Equal(t, medium2md.ImageRef{Alt: "diagram", URL: "https://cdn.example.com/b.JPG"}, refs[1])
	})

	t.Run("no images", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, medium2md.FindImageRefs("plain text", false))
	})
}

func TestDistinctURLs(t *testing.T) {
	t.Parallel()

	refs := []medium2md.ImageRef{{URL: "b"}, {URL: "a"}, {URL: "b"}, {URL: "c"}, {URL: "a"}}

	assert.Equal(t, []string{"b", "a", "c"}, medium2md.DistinctURLs(refs))
}

func TestImageExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".png", medium2md.ImageExtension("https://example.com/x/y.png"))
	assert.Equal(t, ".JPG", medium2md.ImageExtension("https://example.com/y.JPG?w=100#top"))
	assert.Equal(t, "", medium2md.ImageExtension("https://miro.medium.com/v2/resize:fit:700/0*abc"))
	assert.True(t, medium2md.IsImageURL("https://example.com/a.JPEG"))
	assert.False(t, medium2md.IsImageURL("https://example.com/a.svg"))
	assert.False(t, medium2md.IsImageURL("https://example.com/"))
}

func TestNamers(t *testing.T) {
	t.Parallel()

	t.Run("sequential names by position", func(t *testing.T) {
		t.Parallel()

		n := medium2md.SequentialNamer{}

		assert.Equal(t, "media_1.png", n.Name(0, "https://example.com/a.png"))
		assert.Equal(t, "media_12.jpeg", n.Name(11, "https://example.com/x/b.jpeg?q=1"))
	})

	t.Run("basename uses last path segment", func(t *testing.T) {
		t.Parallel()

		n := medium2md.BasenameNamer{}

		assert.Equal(t, "1*abc.png", n.Name(0, "https://miro.medium.com/v2/resize:fit:700/1*abc.png"))
		assert.Equal(t, "b.gif", n.Name(3, "https://example.com/b.gif?size=large"))
	})

	t.Run("basename escapes are replaced with dashes", func(t *testing.T) {
		t.Parallel()

		n := medium2md.BasenameNamer{}

		assert.Equal(t, "my-photo.png", n.Name(0, "https://e.com/my%20photo.png"))
		assert.Equal(t, "a-b.png", n.Name(0, "https://e.com/a%3Fb.png"))
		assert.Equal(t, "c-d.jpg", n.Name(0, "https://e.com/c%23d.jpg"))
		assert.Equal(t, "e-f.gif", n.Name(0, "https://e.com/e%28f%29.gif"))
	})

	t.Run("basename without a usable name falls back to sequential", func(t *testing.T) {
		t.Parallel()

		n := medium2md.BasenameNamer{}

		assert.Equal(t, "media_2.png", n.Name(1, "https://e.com/%20.png"))
		assert.Equal(t, "media_1", n.Name(0, "https://e.com/"))
	})
}

func TestAssignNames(t *testing.T) {
	t.Parallel()

	t.Run("distinct basenames are kept", func(t *testing.T) {
		t.Parallel()

		names := medium2md.AssignNames([]string{
			"https://a.example.com/one.png",
			"https://a.example.com/two.png",
		}, medium2md.BasenameNamer{})

		assert.Equal(t, []string{"one.png", "two.png"}, names)
	})

	t.Run("colliding basenames get a hash suffix", func(t *testing.T) {
		t.Parallel()

		urls := []string{
			"https://a.example.com/x/photo.png",
			"https://b.example.com/y/photo.png",
			"https://c.example.com/z/photo.png",
		}

		names := medium2md.AssignNames(urls, medium2md.BasenameNamer{})

		assert.Equal(t, "photo.png", names[0])
		assert.Regexp(t, `^photo-[0-9a-f]{8}\.png$`, names[1])
		assert.Regexp(t, `^photo-[0-9a-f]{8}\.png$`, names[2])
		assert.NotEqual(t, names[1], names[2])
		assert.Equal(t, names, medium2md.AssignNames(urls, medium2md.BasenameNamer{}), "names are deterministic")
	})
}

func TestContentHash(t *testing.T) {
	t.Parallel()

	h := medium2md.ContentHash([]byte("image bytes"))

	assert.Len(t, h, 16)
	assert.Equal(t, h, medium2md.ContentHash([]byte("image bytes")))
	assert.NotEqual(t, h, medium2md.ContentHash([]byte("other bytes")))
}

func TestMarkdownFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{title: "Simple Title", want: "Simple Title.md"},
		{title: "A/B testing: why?", want: "A-B testing- why.md"},
		{title: "  lots   of\tspace  ", want: "lots of space.md"},
		{title: "", want: "article.md"},
		{title: "///", want: "article.md"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, medium2md.MarkdownFileName(tt.title))
		})
	}
}
