package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/carousel/pkg/cache"
	"github.com/matzehuels/carousel/pkg/scene"
)

// LoadScene reads and validates the scene file at path.
func (r *Runner) LoadScene(path string) (*scene.Scene, error) {
	sc, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded scene", "path", path, "items", len(sc.Items))
	return sc, nil
}

// SceneHash returns the content hash of a scene. Two scenes that decode to
// the same values hash the same regardless of their file format.
func SceneHash(sc *scene.Scene) (string, error) {
	data, err := json.Marshal(sc)
	if err != nil {
		return "", fmt.Errorf("serialize scene for cache key: %w", err)
	}
	return cache.Hash(data), nil
}
