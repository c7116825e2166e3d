// Package scene reads and writes carousel scene files.
//
// A scene bundles everything needed to run a layout pass outside a host UI:
// the container size, the configuration surface and the item sizes. Scenes
// can be written as JSON, YAML or TOML; the format is chosen by extension.
//
//	width: 600
//	height: 200
//	config:
//	  active_item: 2
//	  take_children: 2
//	  inactive_rotation: 15
//	  duration: 400ms
//	  easing: quad-in-out
//	items:
//	  - {label: first, width: 120, height: 80}
//	  - {label: second, width: 90, height: 80}
//
// Configuration fields left out take the defaults from [layout.DefaultConfig].
// Items without an id get a UUID derived from their position and label. An item
// without a width is kept as unmeasured; running a layout over it fails with
// a CONFIGURATION_ERROR, the same way an unmeasured host visual would.
package scene
