package assets

import "errors"

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName rejects names outside [A-Za-z0-9_-].
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath means the custom asset directory is missing or unreadable.
	ErrInvalidBasePath = errors.New("invalid base path")
	ErrAssetRead       = errors.New("failed to read asset")
	ErrPathTraversal   = errors.New("path traversal detected")
)
