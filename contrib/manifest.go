package contrib

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/plugboard/extension"
)

// manifestPoint is one extension point declaration in a manifest.
type manifestPoint struct {
	ID          string `yaml:"id"`
	Shape       string `yaml:"shape"`
	Description string `yaml:"description"`
}

// manifest is the document shape:
//
//	extension_points:
//	  - id: motd.messages
//	    shape: list
//	    description: Messages of the day.
type manifest struct {
	ExtensionPoints []manifestPoint `yaml:"extension_points"`
}

// ParseManifest decodes a YAML manifest of extension point declarations.
// An omitted shape defaults to list; unknown shapes are rejected.
func ParseManifest(data []byte) ([]extension.Point, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	points := make([]extension.Point, 0, len(m.ExtensionPoints))
	for _, mp := range m.ExtensionPoints {
		shape, err := parseShape(mp.Shape)
		if err != nil {
			return nil, fmt.Errorf("extension point %q: %w", mp.ID, err)
		}
		points = append(points, extension.Point{
			ID:          mp.ID,
			Shape:       shape,
			Description: mp.Description,
		})
	}
	return points, nil
}

// RegisterManifest parses a manifest and registers every declared point.
func RegisterManifest(r *extension.Registry, data []byte) ([]extension.Point, error) {
	points, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	for _, p := range points {
		if err := r.AddExtensionPoint(p); err != nil {
			return nil, err
		}
	}
	return points, nil
}

func parseShape(s string) (extension.Shape, error) {
	switch s {
	case "", "list":
		return extension.ShapeList, nil
	case "set":
		return extension.ShapeSet, nil
	case "map":
		return extension.ShapeMap, nil
	default:
		return 0, fmt.Errorf("unknown shape %q", s)
	}
}
