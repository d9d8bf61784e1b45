package domain

import "time"

// Detector is a surveyed LHC access point and its angle on the marker ring.
type Detector struct {
	Name     string   `json:"name"`
	Position GeoPoint `json:"position"`
	Angle    float64  `json:"angle"`
}

// Festival is a named venue the detector ring can be centered on.
type Festival struct {
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Location      GeoPoint `json:"location"`
	Angle         float64  `json:"angle"`
	AllowRotation bool     `json:"allow_rotation"`
}

// Marker is one placed detector.
type Marker struct {
	Name     string   `json:"name"`
	Position GeoPoint `json:"position"`
	Angle    float64  `json:"angle"`
}

// MarkerRing is the detector ring laid out around a festival.
type MarkerRing struct {
	Festival string   `json:"festival"`
	Rotation float64  `json:"rotation"`
	Center   GeoPoint `json:"center"`
	Radius   float64  `json:"radius"`
	Markers  []Marker `json:"markers"`
}

// Overlay event types.
const (
	EventOverlayTranslated = "overlay.translated"
	EventMarkersPlaced     = "overlay.markers"
)

// OverlayEvent is published whenever an overlay or marker ring is computed.
type OverlayEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Reference GeoPoint  `json:"reference"`
	Zone      string    `json:"zone,omitempty"`
	Names     []string  `json:"names,omitempty"`
	Rotation  float64   `json:"rotation"`
	Festival  string    `json:"festival,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
