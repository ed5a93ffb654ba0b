package assets

import "errors"

// AssetResolver serves assets from a custom directory when one is configured,
// falling back to the built-in asset of the same name when the custom
// directory does not provide it.
type AssetResolver struct {
	custom   AssetLoader // nil without a custom directory
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath means
// built-in assets only; a non-empty one must be a readable directory.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	fsLoader, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = fsLoader
	return r, nil
}

// LoadStyle resolves styles/{name}.css.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.resolve(name, AssetLoader.LoadStyle)
}

// LoadTemplate resolves templates/{name}.html.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.resolve(name, AssetLoader.LoadTemplate)
}

func (r *AssetResolver) resolve(name string, load func(AssetLoader, string) (string, error)) (string, error) {
	if r.custom != nil {
		content, err := load(r.custom, name)
		if err == nil {
			return content, nil
		}
		// Invalid names and read failures are reported, not masked by the fallback.
		if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
			return "", err
		}
	}
	return load(r.embedded, name)
}

// HasCustomLoader reports whether a custom asset directory is in use.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ AssetLoader = (*AssetResolver)(nil)
