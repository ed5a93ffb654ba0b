// Package pipeline implements the glossary build stages.
//
// Stages, leaf first:
//   - Line-ending normalization of the per-letter sources
//   - Term extraction (\term{TERM} definition) and case-insensitive ordering
//   - Inline emphasis expansion and HTML escaping
//   - Page rendering through an html/template
//   - Print stylesheet injection ahead of PDF export
//
// Reading sources, assembling the glossary and writing the page are handled
// by the root glossgen package. This package only transforms strings, so
// every stage can be tested without touching the filesystem.
package pipeline
