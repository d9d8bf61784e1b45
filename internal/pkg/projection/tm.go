package projection

import (
	"fmt"
	"sync"

	"github.com/ctessum/geom/proj"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
)

// geographic is the datum every GeoPoint is expressed in.
const geographic = "+proj=longlat +datum=WGS84 +no_defs"

// zoneTransforms holds both directions between WGS84 and one UTM zone.
type zoneTransforms struct {
	forward proj.Transformer
	inverse proj.Transformer
}

// TransverseMercator projects between WGS84 and UTM zones through proj4
// definitions. Transforms are built on first use of a zone and reused.
// It is safe for concurrent use.
type TransverseMercator struct {
	wgs84 *proj.SR

	mu    sync.Mutex
	zones map[domain.Zone]*zoneTransforms
}

// NewUTM returns a UTM projector on WGS84.
func NewUTM() *TransverseMercator {
	wgs84, err := proj.Parse(geographic)
	if err != nil {
		// The definition is a constant.
		panic("projection: parse " + geographic + ": " + err.Error())
	}
	return &TransverseMercator{
		wgs84: wgs84,
		zones: make(map[domain.Zone]*zoneTransforms),
	}
}

// Definition returns the proj4 string for zone.
func Definition(zone domain.Zone) string {
	def := fmt.Sprintf("+proj=utm +zone=%d", zone.Number)
	if zone.South {
		def += " +south"
	}
	return def + " +datum=WGS84 +units=m +no_defs"
}

// Forward projects p into zone, returning easting/northing in meters.
func (tm *TransverseMercator) Forward(p domain.GeoPoint, zone domain.Zone) (domain.PlanarPoint, error) {
	zt, err := tm.transforms("forward", zone)
	if err != nil {
		return domain.PlanarPoint{}, err
	}
	x, y, err := zt.forward(p.Lng, p.Lat)
	if err != nil {
		return domain.PlanarPoint{}, &ProjectionError{Op: "forward", Zone: zone.String(), Err: err}
	}
	return domain.PlanarPoint{X: x, Y: y}, nil
}

// Inverse converts easting/northing in zone back to a geographic point.
func (tm *TransverseMercator) Inverse(pt domain.PlanarPoint, zone domain.Zone) (domain.GeoPoint, error) {
	zt, err := tm.transforms("inverse", zone)
	if err != nil {
		return domain.GeoPoint{}, err
	}
	lng, lat, err := zt.inverse(pt.X, pt.Y)
	if err != nil {
		return domain.GeoPoint{}, &ProjectionError{Op: "inverse", Zone: zone.String(), Err: err}
	}
	return domain.GeoPoint{Lat: lat, Lng: WrapLongitude(lng)}, nil
}

func (tm *TransverseMercator) transforms(op string, zone domain.Zone) (*zoneTransforms, error) {
	if !ValidZone(zone) {
		return nil, &ProjectionError{
			Op: op, Zone: zone.String(),
			Err: fmt.Errorf("%w: zone number %d", ErrInvalidZone, zone.Number),
		}
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()
	if zt, ok := tm.zones[zone]; ok {
		return zt, nil
	}

	utm, err := proj.Parse(Definition(zone))
	if err != nil {
		return nil, &ProjectionError{Op: op, Zone: zone.String(), Err: err}
	}
	fwd, err := tm.wgs84.NewTransform(utm)
	if err != nil {
		return nil, &ProjectionError{Op: op, Zone: zone.String(), Err: err}
	}
	inv, err := utm.NewTransform(tm.wgs84)
	if err != nil {
		return nil, &ProjectionError{Op: op, Zone: zone.String(), Err: err}
	}

	zt := &zoneTransforms{forward: fwd, inverse: inv}
	tm.zones[zone] = zt
	return zt, nil
}
