package registry

import (
	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/shapes"
)

// LHCRadius is the mean radius of the LHC ring in meters.
const LHCRadius = 4300

// LHCPoints are the eight LHC access points, ATLAS first.
var LHCPoints = []domain.POI{
	{Name: "ATLAS", Position: domain.GeoPoint{Lat: 46.23497502511518, Lng: 6.0536309870679235}},
	{Name: "Point 2", Position: domain.GeoPoint{Lat: 46.251544268663615, Lng: 6.021434048433471}},
	{Name: "Point 3", Position: domain.GeoPoint{Lat: 46.277518302316, Lng: 6.012012123858463}},
	{Name: "Point 4", Position: domain.GeoPoint{Lat: 46.30445011831323, Lng: 6.037082600001055}},
	{Name: "CMS", Position: domain.GeoPoint{Lat: 46.31026650910126, Lng: 6.078887140749957}},
	{Name: "Point 6", Position: domain.GeoPoint{Lat: 46.29351162288481, Lng: 6.111756560082773}},
	{Name: "Point 7", Position: domain.GeoPoint{Lat: 46.266418692548335, Lng: 6.115151115340182}},
	{Name: "Point 8", Position: domain.GeoPoint{Lat: 46.2417904558472, Lng: 6.097942093891781}},
}

// CERN returns the built-in catalog of CERN accelerators.
func CERN() *Registry {
	return New(
		Entry{"LHC", shapes.NewCircular("Large Hadron Collider",
			domain.GeoPoint{Lat: 46.2725593743487, Lng: 6.065987083678201}, LHCRadius, LHCPoints, "")},
		Entry{"SPS", shapes.NewCircular("Super Proton Synchrotron",
			domain.GeoPoint{Lat: 46.2447, Lng: 6.056}, 1100, nil, "")},
		Entry{"PS", shapes.NewCircular("Proton Synchrotron",
			domain.GeoPoint{Lat: 46.232129436307034, Lng: 6.048649235698542}, 100, nil, "")},
		Entry{"PSB", shapes.NewCircular("Booster",
			domain.GeoPoint{Lat: 46.232875, Lng: 6.04718}, 25, nil, "")},
		Entry{"FCC", shapes.NewCircular("Future Circular Collider",
			domain.GeoPoint{Lat: 46.12280614864221, Lng: 6.131499400104788}, 14500, nil, "")},
		Entry{"LINAC4", shapes.NewLinear("LINAC4",
			domain.GeoPoint{Lat: 46.23121030223552, Lng: 6.046594519834996}, 78, -12, nil, "#FF0000")},
		Entry{"LINAC3", shapes.NewLinear("LINAC3",
			domain.GeoPoint{Lat: 46.23163551273157, Lng: 6.046979545777202}, 10, 20, nil, "#C71585")},
		Entry{"LEIR", shapes.NewRoundedRectangle("LEIR",
			domain.GeoPoint{Lat: 46.231557004669, Lng: 6.047967826365111}, 20, 20, 54, nil, "#ff6b6b")},
	)
}
