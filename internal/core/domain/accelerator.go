package domain

// ShapeKind is the geometry family a translated accelerator renders as.
type ShapeKind string

const (
	ShapeCircle   ShapeKind = "circle"
	ShapePolyline ShapeKind = "polyline"
	ShapePolygon  ShapeKind = "polygon"
)

// POI is a named sub-location attached to an accelerator (e.g. a detector).
type POI struct {
	Name     string   `json:"name"`
	Position GeoPoint `json:"position"`
}

// TranslatedShape is an accelerator footprint placed at a new reference point.
type TranslatedShape struct {
	Kind      ShapeKind  `json:"kind"`
	Name      string     `json:"name"`
	ClassName string     `json:"class_name"`
	Color     string     `json:"color,omitempty"`
	Center    *GeoPoint  `json:"center,omitempty"`
	Radius    float64    `json:"radius,omitempty"` // meters, circles only
	Path      []GeoPoint `json:"path,omitempty"`
}

// AcceleratorInfo describes a catalog entry without translating it.
type AcceleratorInfo struct {
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Kind      ShapeKind `json:"kind"`
	Reference GeoPoint  `json:"reference"`
	Color     string    `json:"color,omitempty"`
	Radius    float64   `json:"radius,omitempty"`
	Length    float64   `json:"length,omitempty"`
	Direction float64   `json:"direction,omitempty"`
	Width     float64   `json:"width,omitempty"`
	Height    float64   `json:"height,omitempty"`
	Rotation  float64   `json:"rotation,omitempty"`
	POICount  int       `json:"poi_count"`
}

// AcceleratorOverlay is one accelerator translated to a reference point.
type AcceleratorOverlay struct {
	Key              string          `json:"key"`
	Shape            TranslatedShape `json:"shape"`
	PointsOfInterest []POI           `json:"points_of_interest"`
}

// Overlay is the result of placing several accelerators at one reference point.
type Overlay struct {
	Reference    GeoPoint             `json:"reference"`
	Zone         string               `json:"zone"`
	Rotation     float64              `json:"rotation"`
	Accelerators []AcceleratorOverlay `json:"accelerators"`
	Warnings     []Warning            `json:"warnings,omitempty"`
}

// Warning is a non-fatal diagnostic attached to a result.
type Warning struct {
	Code    string `json:"code"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

// WarningUnknownAccelerator is raised for names missing from the registry.
const WarningUnknownAccelerator = "unknown_accelerator"
