package medium2md

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Image folder names under the output directory.
const (
	MediaFolder  = "media"  // rendered-page images, sequential names
	LocalFolder  = "local"  // standalone localize pass, basename names
	AssetsFolder = "assets" // static-fetch pipeline, sequential names
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

var (
	emptyAltImageRe = regexp.MustCompile(`!\[()\]\((https?://[^\s()]+?\.(?i:jpe?g|png|gif))\)`)
	anyAltImageRe   = regexp.MustCompile(`!\[([^\]\n]*)\]\((https?://[^\s()]+?\.(?i:jpe?g|png|gif))\)`)
)

// ImageRef is a Markdown image whose URL points at a supported image file.
type ImageRef struct {
	Alt string
	URL string
}

// LocalImage is an image that has been stored under the output directory.
type LocalImage struct {
	URL  string // remote URL as it appeared in the document
	Name string // file name inside the image folder
	Path string // path relative to the output directory, forward slashes
	File string // path on disk
	Size int
	Hash string // ContentHash of the bytes
}

// FindImageRefs returns every image reference in document order, one per
// textual occurrence. Only empty-alt images (![](url)) match unless anyAlt
// is set.
func FindImageRefs(text string, anyAlt bool) []ImageRef {
	re := emptyAltImageRe
	if anyAlt {
		re = anyAltImageRe
	}

	var refs []ImageRef
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		refs = append(refs, ImageRef{Alt: m[1], URL: m[2]})
	}
	return refs
}

// DistinctURLs returns the URLs of refs with duplicates removed, keeping
// the order of first occurrence.
func DistinctURLs(refs []ImageRef) []string {
	seen := make(map[string]bool, len(refs))
	var urls []string
	for _, ref := range refs {
		if seen[ref.URL] {
			continue
		}
		seen[ref.URL] = true
		urls = append(urls, ref.URL)
	}
	return urls
}

// ImageExtension returns the extension of the last path segment of rawURL,
// ignoring any query string or fragment. Case is preserved.
func ImageExtension(rawURL string) string {
	return path.Ext(lastSegment(rawURL))
}

// IsImageURL reports whether rawURL names a supported image file.
func IsImageURL(rawURL string) bool {
	return imageExtensions[strings.ToLower(ImageExtension(rawURL))]
}

func lastSegment(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	p = strings.TrimSuffix(p, "/")
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		p = p[i+1:]
	}
	return p
}

// ImageDownloader stores remote images under an output directory.
type ImageDownloader interface {
	// Download fetches each URL once and returns the images that were
	// stored, in the order of urls. Failed downloads are left out.
	Download(ctx context.Context, urls []string, outputDir string) ([]LocalImage, error)
}

// ImageLocalizer replaces the remote images of a Markdown document with
// local copies.
type ImageLocalizer interface {
	// LocalizeImages returns text with every downloadable image reference
	// rewritten to a path relative to outputDir.
	LocalizeImages(ctx context.Context, text, outputDir string) (string, []LocalImage, error)
}

// Namer chooses the file name of a downloaded image.
type Namer interface {
	// Name returns the file name for the image at position index (0-based)
	// among the images being stored.
	Name(index int, rawURL string) string
}

// SequentialNamer names images media_1.png, media_2.jpg, ...
type SequentialNamer struct{}

// Name implements Namer.
func (SequentialNamer) Name(index int, rawURL string) string {
	return fmt.Sprintf("media_%d%s", index+1, ImageExtension(rawURL))
}

// BasenameNamer names images after the last segment of their URL path.
// Characters that would break a Markdown link or a file name become
// dashes, so the name can be written into a reference as is.
type BasenameNamer struct{}

var unsafeImageNameRe = regexp.MustCompile(`[^A-Za-z0-9._*+=@,-]+`)

// Name implements Namer.
func (BasenameNamer) Name(index int, rawURL string) string {
	name := unsafeImageNameRe.ReplaceAllString(lastSegment(rawURL), "-")
	name = strings.Trim(name, "-")
	if strings.Trim(name, ".") == "" || strings.HasPrefix(name, ".") {
		return SequentialNamer{}.Name(index, rawURL)
	}
	return name
}

// AssignNames names each of urls with namer. When two different URLs
// receive the same name, the later one gets a suffix derived from its URL
// hash so no download overwrites another.
func AssignNames(urls []string, namer Namer) []string {
	names := make([]string, len(urls))
	taken := make(map[string]bool, len(urls))
	for i, u := range urls {
		name := namer.Name(i, u)
		if taken[name] {
			ext := path.Ext(name)
			stem := fmt.Sprintf("%s-%08x", strings.TrimSuffix(name, ext), uint32(xxhash.Sum64String(u)))
			name = stem + ext
			for n := 2; taken[name]; n++ {
				name = fmt.Sprintf("%s-%d%s", stem, n, ext)
			}
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

// ContentHash returns the hex xxHash64 of b.
func ContentHash(b []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}
