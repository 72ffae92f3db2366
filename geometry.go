package tilegrid

import "fmt"

// GeometryKind is the shape of the tiles in a map.
type GeometryKind uint8

const (
	Square GeometryKind = iota
	Isometric
	Hexagonal
)

// HexOrientation is only meaningful for Hexagonal maps.
type HexOrientation uint8

const (
	PointyTop HexOrientation = iota
	FlatTop
)

// Geometry describes how a map lays out its tiles on screen. It is
// comparable and so can be used directly in map keys.
type Geometry struct {
	Kind        GeometryKind   `yaml:"kind"`
	Orientation HexOrientation `yaml:"orientation,omitempty"`
}

// SquareGeometry is the default orthogonal layout.
func SquareGeometry() Geometry { return Geometry{Kind: Square} }

// IsometricGeometry is a diamond layout.
func IsometricGeometry() Geometry { return Geometry{Kind: Isometric} }

// HexagonalGeometry is a hex layout with the given orientation.
func HexagonalGeometry(o HexOrientation) Geometry {
	return Geometry{Kind: Hexagonal, Orientation: o}
}

func (g Geometry) String() string {
	switch g.Kind {
	case Square:
		return "square"
	case Isometric:
		return "isometric"
	case Hexagonal:
		if g.Orientation == FlatTop {
			return "hexagonal(flat)"
		}
		return "hexagonal(pointy)"
	}
	return fmt.Sprintf("geometry(%d)", g.Kind)
}

// ParseGeometry reads the names produced by Geometry.String. A bare
// "hexagonal" is pointy topped.
func ParseGeometry(s string) (Geometry, error) {
	switch s {
	case "square", "":
		return SquareGeometry(), nil
	case "isometric":
		return IsometricGeometry(), nil
	case "hexagonal", "hexagonal(pointy)":
		return HexagonalGeometry(PointyTop), nil
	case "hexagonal(flat)":
		return HexagonalGeometry(FlatTop), nil
	}
	return Geometry{}, fmt.Errorf("unknown map geometry %q", s)
}
