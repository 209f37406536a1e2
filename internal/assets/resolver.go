package assets

import "errors"

// AssetResolver tries its layers in order and moves on to the next one only
// when a layer has no such asset. Name and read errors stop the lookup.
type AssetResolver struct {
	layers []AssetLoader
}

// NewAssetResolver returns a resolver over the embedded assets, with the
// directory override in front when overrideDir is set.
func NewAssetResolver(overrideDir string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if overrideDir != "" {
		dir, err := NewDirLoader(overrideDir)
		if err != nil {
			return nil, err
		}
		r.layers = append(r.layers, dir)
	}
	r.layers = append(r.layers, NewEmbeddedLoader())
	return r, nil
}

// Overridden reports whether a user directory is consulted first.
func (r *AssetResolver) Overridden() bool {
	return len(r.layers) > 1
}

// LoadStyle implements AssetLoader.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(styleKind, func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadScript implements AssetLoader.
func (r *AssetResolver) LoadScript(name string) (string, error) {
	return r.first(scriptKind, func(l AssetLoader) (string, error) { return l.LoadScript(name) })
}

func (r *AssetResolver) first(k kind, load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, layer := range r.layers {
		var content string
		content, err = load(layer)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, k.notFound) {
			return "", err
		}
	}
	return "", err
}

var _ AssetLoader = (*AssetResolver)(nil)
