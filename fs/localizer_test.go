package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/medium2md"
	"github.com/fwojciec/medium2md/fs"
	"github.com/fwojciec/medium2md/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// imageServer returns a mock fetcher serving body for every URL in ok
// and a not found error for anything else. It counts calls per URL.
func imageServer(ok map[string]string) (*mock.ImageFetcher, *sync.Map) {
	calls := &sync.Map{}
	return &mock.ImageFetcher{
		FetchImageFn: func(_ context.Context, url string) ([]byte, error) {
			n, _ := calls.LoadOrStore(url, new(atomic.Int32))
			n.(*atomic.Int32).Add(1)
			body, found := ok[url]
			if !found {
				return nil, medium2md.Errorf(medium2md.ENOTFOUND, "HTTP 404 for %s", url)
			}
			return []byte(body), nil
		},
	}, calls
}

func callCount(calls *sync.Map, url string) int32 {
	n, ok := calls.Load(url)
	if !ok {
		return 0
	}
	return n.(*atomic.Int32).Load()
}

func TestLocalizer_Localize(t *testing.T) {
	t.Parallel()

	t.Run("downloads images and rewrites references", func(t *testing.T) {
		t.Parallel()

		// Given a document with two images
		out := t.TempDir()
		text := "# Story\n\n![](https://miro.medium.com/v2/1*a.png)\n\nText\n\n![](https://cdn.example.com/img/b.jpg)\n"
		fetcher, _ := imageServer(map[string]string{
			"https://miro.medium.com/v2/1*a.png":  "A",
			"https://cdn.example.com/img/b.jpg": "B",
		})

		// When I localize it
		got, paths, err := fs.NewLocalizer(fetcher).Localize(context.Background(), text, out)

		// Then references point at the local folder
		require.NoError(t, err)
		assert.Equal(t, "# Story\n\n![](local/1*a.png)\n\nText\n\n![](local/b.jpg)\n", got)

		// And the files exist in order of first occurrence
		require.Len(t, paths, 2)
		assert.Equal(t, filepath.Join(out, "local", "1*a.png"), paths[0])
		assert.Equal(t, filepath.Join(out, "local", "b.jpg"), paths[1])
		assert.Equal(t, "A", readFile(t, paths[0]))
		assert.Equal(t, "B", readFile(t, paths[1]))
	})

	t.Run("escaped basenames become link-safe file names", func(t *testing.T) {
		t.Parallel()

		// Given images whose URL paths carry a space and a question mark
		out := t.TempDir()
		text := "![](https://e.com/my%20photo.png)\n![](https://e.com/a%3Fb.png)"
		fetcher, _ := imageServer(map[string]string{
			"https://e.com/my%20photo.png": "SPACE",
			"https://e.com/a%3Fb.png":      "QUESTION",
		})

		// When I localize the document
		got, paths, err := fs.NewLocalizer(fetcher).Localize(context.Background(), text, out)

		// Then every reference names the file it was written to
		require.NoError(t, err)
		assert.Equal(t, "![](local/my-photo.png)\n![](local/a-b.png)", got)
		require.Len(t, paths, 2)
		assert.Equal(t, "SPACE", readFile(t, filepath.Join(out, "local", "my-photo.png")))
		assert.Equal(t, "QUESTION", readFile(t, filepath.Join(out, "local", "a-b.png")))
	})

	t.Run("failed image keeps its URL and creates no file", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		text := "![](https://miro.medium.com/gone.png)\n![](https://miro.medium.com/ok.png)"
		fetcher, _ := imageServer(map[string]string{"https://miro.medium.com/ok.png": "OK"})

		got, paths, err := fs.NewLocalizer(fetcher).Localize(context.Background(), text, out)

		require.NoError(t, err)
		assert.Equal(t, "![](https://miro.medium.com/gone.png)\n![](local/ok.png)", got)
		assert.Equal(t, []string{filepath.Join(out, "local", "ok.png")}, paths)
		assert.NoFileExists(t, filepath.Join(out, "local", "gone.png"))
	})

	t.Run("no downloadable images leaves text and disk untouched", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		text := "![](https://miro.medium.com/gone.png) and ![alt](https://miro.medium.com/x.png) and ![](https://x.com/a.svg)"
		fetcher, _ := imageServer(nil)

		got, paths, err := fs.NewLocalizer(fetcher).Localize(context.Background(), text, out)

		require.NoError(t, err)
		assert.Equal(t, text, got)
		assert.Empty(t, paths)
		assert.NoDirExists(t, filepath.Join(out, "local"))
	})

	t.Run("repeated URL is fetched once and every occurrence rewritten", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		url := "https://miro.medium.com/v2/1*dup.png"
		text := "![](" + url + ")\nsee " + url + "\n![](" + url + ")"
		fetcher, calls := imageServer(map[string]string{url: "D"})

		got, paths, err := fs.NewLocalizer(fetcher).Localize(context.Background(), text, out)

		require.NoError(t, err)
		assert.Equal(t, int32(1), callCount(calls, url))
		assert.Len(t, paths, 1)
		assert.NotContains(t, got, url)
		assert.Equal(t, 3, strings.Count(got, "local/1*dup.png"))
	})

	t.Run("sequential naming into a media folder", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		text := "![](https://a.example.com/x.png)\n![](https://b.example.com/y.gif)"
		fetcher, _ := imageServer(map[string]string{
			"https://a.example.com/x.png": "X",
			"https://b.example.com/y.gif": "Y",
		})

		l := fs.NewLocalizer(fetcher,
			fs.WithNamer(medium2md.SequentialNamer{}),
			fs.WithFolder(medium2md.MediaFolder),
		)
		got, _, err := l.Localize(context.Background(), text, out)

		require.NoError(t, err)
		assert.Equal(t, "![](media/media_1.png)\n![](media/media_2.gif)", got)
		assert.FileExists(t, filepath.Join(out, "media", "media_2.gif"))
	})

	t.Run("colliding basenames do not overwrite each other", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		text := "![](https://a.example.com/photo.png)\n![](https://b.example.com/photo.png)"
		fetcher, _ := imageServer(map[string]string{
			"https://a.example.com/photo.png": "first",
			"https://b.example.com/photo.png": "second",
		})

		_, paths, err := fs.NewLocalizer(fetcher).Localize(context.Background(), text, out)

		require.NoError(t, err)
		require.Len(t, paths, 2)
		assert.NotEqual(t, paths[0], paths[1])
		assert.Equal(t, "first", readFile(t, paths[0]))
		assert.Equal(t, "second", readFile(t, paths[1]))
	})

	t.Run("any alt includes captioned images", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		fetcher, _ := imageServer(map[string]string{"https://miro.medium.com/x.png": "X"})

		got, _, err := fs.NewLocalizer(fetcher, fs.WithAnyAlt(true)).
			Localize(context.Background(), "![diagram](https://miro.medium.com/x.png)", out)

		require.NoError(t, err)
		assert.Equal(t, "![diagram](local/x.png)", got)
	})

	t.Run("context cancellation aborts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(ctx context.Context, _ string) ([]byte, error) {
				return nil, ctx.Err()
			},
		}

		_, _, err := fs.NewLocalizer(fetcher).Localize(ctx, "![](https://miro.medium.com/x.png)", t.TempDir())

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("write failure is returned", func(t *testing.T) {
		t.Parallel()

		// A regular file where the image folder should be
		out := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(out, "local"), []byte("x"), 0644))
		fetcher, _ := imageServer(map[string]string{"https://miro.medium.com/x.png": "X"})

		_, _, err := fs.NewLocalizer(fetcher).Localize(context.Background(), "![](https://miro.medium.com/x.png)", out)

		require.Error(t, err)
	})
}

func TestLocalizer_LocalizeImages_RecordsManifest(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	fetcher, _ := imageServer(map[string]string{"https://miro.medium.com/x.png": "bytes"})

	_, images, err := fs.NewLocalizer(fetcher).LocalizeImages(context.Background(), "![](https://miro.medium.com/x.png)", out)

	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, medium2md.LocalImage{
		URL:  "https://miro.medium.com/x.png",
		Name: "x.png",
		Path: "local/x.png",
		File: filepath.Join(out, "local", "x.png"),
		Size: 5,
		Hash: medium2md.ContentHash([]byte("bytes")),
	}, images[0])
}

func TestLocalizer_Download_RespectsConcurrencyLimit(t *testing.T) {
	t.Parallel()

	var inFlight, peak, started atomic.Int32
	release := make(chan struct{})
	fetcher := &mock.ImageFetcher{
		FetchImageFn: func(_ context.Context, _ string) ([]byte, error) {
			started.Add(1)
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			<-release
			inFlight.Add(-1)
			return nil, errors.New("skip")
		},
	}

	urls := []string{
		"https://e.com/1.png", "https://e.com/2.png", "https://e.com/3.png",
		"https://e.com/4.png", "https://e.com/5.png",
	}

	dir := t.TempDir()
	done := make(chan error)
	go func() {
		_, err := fs.NewLocalizer(fetcher, fs.WithConcurrency(2)).Download(context.Background(), urls, dir)
		done <- err
	}()

	// Given both slots taken by blocked fetches
	require.Eventually(t, func() bool { return inFlight.Load() == 2 }, time.Second, time.Millisecond)

	// Then no third fetch starts while they are held
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(2), started.Load())

	// And every fetch runs once they are released
	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(5), started.Load())
	assert.Equal(t, int32(2), peak.Load())
}

func TestReplaceImageURLs_LongestFirst(t *testing.T) {
	t.Parallel()

	images := []medium2md.LocalImage{
		{URL: "https://e.com/a.png", Path: "local/a.png"},
		{URL: "https://e.com/a.png.png", Path: "local/a.png-2.png"},
	}

	got := fs.ReplaceImageURLs("![](https://e.com/a.png.png) ![](https://e.com/a.png)", images)

	assert.Equal(t, "![](local/a.png-2.png) ![](local/a.png)", got)
}
