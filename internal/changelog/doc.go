// Package changelog turns commit subjects between git tags into a Markdown changelog.
//
// This package implements:
//   - Subject-line classification for the "type(category): subject" convention,
//     with a total fallback for free-text subjects
//   - Deterministic grouping of classified commits into typed sections
//   - Markdown rendering of tag ranges with linked short commit ids
//   - Range planning from a newest-first tag list and a parallel generator
//
// Commit records come from a Source; internal/git provides the go-git backed one.
package changelog
