package cache

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key for the targets of a scene.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key for a rendered snapshot.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists inputs that change the computed targets without
// changing the scene file.
type LayoutKeyOpts struct {
	ActiveItem *int    `json:"active_item,omitempty"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
}

// ArtifactKeyOpts lists inputs that change a rendered snapshot.
type ArtifactKeyOpts struct {
	Layout   LayoutKeyOpts `json:"layout"`
	Format   string        `json:"format"`
	AtMS     int64         `json:"at_ms,omitempty"`
	From     *int          `json:"from,omitempty"`
	Labels   bool          `json:"labels,omitempty"`
	Fill     string        `json:"fill,omitempty"`
	Backdrop string        `json:"backdrop,omitempty"`
}

// DefaultKeyer produces "layout:<hash>" and "artifact:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
