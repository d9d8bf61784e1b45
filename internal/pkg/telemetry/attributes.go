package telemetry

// Span attribute keys shared by the services.
const (
	AttrReference = "overlay.reference"
	AttrZone      = "overlay.zone"
	AttrNames     = "overlay.names"
	AttrRotation  = "overlay.rotation"
	AttrFestival  = "markers.festival"
)
