package http

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/pkg/geospatial"
)

// MaxCircleSegments caps the polygon resolution requested through ?segments.
const MaxCircleSegments = 720

// OverlayFeatureCollection renders every shape and point of interest of an
// overlay. Circles become polygons when segments > 0.
func OverlayFeatureCollection(o *domain.Overlay, segments int) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, a := range o.Accelerators {
		appendAccelerator(fc, a, segments)
	}
	var pts []domain.GeoPoint
	for _, a := range o.Accelerators {
		pts = append(pts, acceleratorExtent(a)...)
	}
	fc.BBox = bbox(pts)
	fc.ExtraMembers = geojson.Properties{
		"reference": []float64{o.Reference.Lng, o.Reference.Lat},
		"zone":      o.Zone,
		"rotation":  o.Rotation,
	}
	if len(o.Warnings) > 0 {
		fc.ExtraMembers["warnings"] = o.Warnings
	}
	return fc
}

// AcceleratorFeatureCollection renders a single translated accelerator.
func AcceleratorFeatureCollection(a *domain.AcceleratorOverlay, segments int) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	appendAccelerator(fc, *a, segments)
	fc.BBox = bbox(acceleratorExtent(*a))
	return fc
}

// MarkerFeatureCollection renders a detector ring as points plus its center.
func MarkerFeatureCollection(ring *domain.MarkerRing) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	pts := []domain.GeoPoint{ring.Center}
	for _, m := range ring.Markers {
		pts = append(pts, m.Position)
	}
	fc.BBox = bbox(pts)

	center := geojson.NewFeature(geospatial.ToOrb(ring.Center))
	center.Properties["name"] = ring.Festival
	center.Properties["kind"] = "ring-center"
	center.Properties["radius"] = ring.Radius
	center.Properties["rotation"] = ring.Rotation
	fc.Append(center)

	for _, m := range ring.Markers {
		f := geojson.NewFeature(geospatial.ToOrb(m.Position))
		f.Properties["name"] = m.Name
		f.Properties["kind"] = "marker"
		f.Properties["angle"] = m.Angle
		f.Properties["class"] = "detector-marker " + domain.Slugify(m.Name)
		fc.Append(f)
	}
	return fc
}

func appendAccelerator(fc *geojson.FeatureCollection, a domain.AcceleratorOverlay, segments int) {
	shape := ShapeFeature(a.Shape, segments)
	shape.ID = a.Key
	shape.Properties["key"] = a.Key
	fc.Append(shape)

	for _, poi := range a.PointsOfInterest {
		f := geojson.NewFeature(geospatial.ToOrb(poi.Position))
		f.Properties["name"] = poi.Name
		f.Properties["kind"] = "poi"
		f.Properties["accelerator"] = a.Key
		fc.Append(f)
	}
}

// ShapeFeature converts a translated shape to a GeoJSON feature.
func ShapeFeature(s domain.TranslatedShape, segments int) *geojson.Feature {
	var geom orb.Geometry
	switch s.Kind {
	case domain.ShapeCircle:
		var center domain.GeoPoint
		if s.Center != nil {
			center = *s.Center
		}
		if segments >= 3 {
			geom = orb.Polygon{toRing(geospatial.CircleRing(center, s.Radius, segments))}
		} else {
			geom = geospatial.ToOrb(center)
		}
	case domain.ShapePolyline:
		ls := make(orb.LineString, len(s.Path))
		for i, p := range s.Path {
			ls[i] = geospatial.ToOrb(p)
		}
		geom = ls
	default:
		geom = orb.Polygon{toRing(s.Path)}
	}

	f := geojson.NewFeature(geom)
	f.Properties["name"] = s.Name
	f.Properties["class"] = s.ClassName
	f.Properties["kind"] = string(s.Kind)
	if s.Color != "" {
		f.Properties["color"] = s.Color
	}
	if s.Kind == domain.ShapeCircle {
		f.Properties["radius"] = s.Radius
	}
	return f
}

// acceleratorExtent returns the points that bound a translated accelerator.
// A circle contributes the box around its full radius.
func acceleratorExtent(a domain.AcceleratorOverlay) []domain.GeoPoint {
	pts := append([]domain.GeoPoint(nil), a.Shape.Path...)
	if a.Shape.Kind == domain.ShapeCircle && a.Shape.Center != nil {
		b := geospatial.BoundingBox(*a.Shape.Center, a.Shape.Radius)
		pts = append(pts,
			domain.GeoPoint{Lat: b.MinLat, Lng: b.MinLng},
			domain.GeoPoint{Lat: b.MaxLat, Lng: b.MaxLng},
		)
	}
	for _, poi := range a.PointsOfInterest {
		pts = append(pts, poi.Position)
	}
	return pts
}

// bbox is the RFC 7946 bounding box of points, west-south-east-north.
func bbox(points []domain.GeoPoint) geojson.BBox {
	if len(points) == 0 {
		return nil
	}
	b := geospatial.BoundsOf(points)
	return geojson.BBox{b.MinLng, b.MinLat, b.MaxLng, b.MaxLat}
}

// toRing builds a closed ring from path.
func toRing(path []domain.GeoPoint) orb.Ring {
	ring := make(orb.Ring, 0, len(path)+1)
	for _, p := range path {
		ring = append(ring, geospatial.ToOrb(p))
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}
