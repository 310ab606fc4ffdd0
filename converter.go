package medium2md

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor).
	// Image syntax ![alt](url) must be preserved in the output.
	Convert(html string) (string, error)
}
