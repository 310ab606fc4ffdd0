// Package medium2md downloads a single web article, extracts its readable
// content and images, and rewrites it as a cleaned local Markdown file.
//
// This package contains domain types, interfaces and the pure text passes
// (boilerplate stripping, image reference scanning, file naming) following
// Ben Johnson's Standard Package Layout. Implementations that touch the
// network or the file system live in subdirectories named after their
// primary dependency (e.g., http/, rod/, goquery/, fs/).
package medium2md
