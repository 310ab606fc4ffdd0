package medium2md

// CleanupMode selects what happens to downloaded images once the document
// is final.
type CleanupMode string

// Available cleanup modes.
const (
	// CleanupPrune removes image files no Markdown file references.
	CleanupPrune CleanupMode = "prune"

	// CleanupAll removes the image folders entirely, leaving documents
	// that point at remote URLs only.
	CleanupAll CleanupMode = "all"

	// CleanupNone keeps every downloaded file.
	CleanupNone CleanupMode = "none"
)

// ParseCleanupMode returns the mode named s. The empty string selects
// CleanupPrune.
func ParseCleanupMode(s string) (CleanupMode, error) {
	switch m := CleanupMode(s); m {
	case CleanupPrune, CleanupAll, CleanupNone:
		return m, nil
	case "":
		return CleanupPrune, nil
	}
	return "", Errorf(EINVALID, "unknown cleanup mode %q (want prune, all or none)", s)
}

// ImageFolders lists every folder images are stored in.
func ImageFolders() []string {
	return []string{MediaFolder, LocalFolder, AssetsFolder}
}
