package domain

import "fmt"

// GeoPoint represents a geographic coordinate (WGS 84), in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlanarPoint is a position in meters inside a projection zone.
type PlanarPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Zone identifies a 6°-wide UTM band and hemisphere.
type Zone struct {
	Number int  `json:"number"`
	South  bool `json:"south"`
}

// EPSG returns the numeric EPSG code for the zone (326NN north, 327NN south).
func (z Zone) EPSG() int {
	if z.South {
		return 32700 + z.Number
	}
	return 32600 + z.Number
}

func (z Zone) String() string {
	if z.South {
		return fmt.Sprintf("EPSG:327%02d", z.Number)
	}
	return fmt.Sprintf("EPSG:326%02d", z.Number)
}

// CentralMeridian returns the longitude of the zone's central meridian.
func (z Zone) CentralMeridian() float64 {
	return float64(z.Number-1)*6 - 180 + 3
}

// Offset is the planar translation between two points in a shared zone.
type Offset struct {
	DX   float64 `json:"dx"`
	DY   float64 `json:"dy"`
	Zone Zone    `json:"zone"`
}

// Measurement is the great-circle distance and initial bearing between two points.
type Measurement struct {
	From     GeoPoint `json:"from"`
	To       GeoPoint `json:"to"`
	Distance float64  `json:"distance"`
	Bearing  float64  `json:"bearing"`
}

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// ProjectedPoint is a point expressed in a zone's planar coordinates.
type ProjectedPoint struct {
	Zone string  `json:"zone"`
	EPSG int     `json:"epsg"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}
