package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/registry"
	"github.com/samirrijal/lhcoverlay/internal/core/usecases"
)

// kindField resolves a domain.ShapeKind as a plain string.
var kindField = &graphql.Field{
	Type: graphql.String,
	Resolve: func(p graphql.ResolveParams) (interface{}, error) {
		switch v := p.Source.(type) {
		case domain.TranslatedShape:
			return string(v.Kind), nil
		case *domain.TranslatedShape:
			return string(v.Kind), nil
		case domain.AcceleratorInfo:
			return string(v.Kind), nil
		case *domain.AcceleratorInfo:
			return string(v.Kind), nil
		}
		return nil, nil
	},
}

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lng": &graphql.Field{Type: graphql.Float},
		},
	})

	poiType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PointOfInterest",
		Fields: graphql.Fields{
			"name":     &graphql.Field{Type: graphql.String},
			"position": &graphql.Field{Type: geoPointType},
		},
	})

	shapeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Shape",
		Fields: graphql.Fields{
			"kind":       kindField,
			"name":       &graphql.Field{Type: graphql.String},
			"class_name": &graphql.Field{Type: graphql.String},
			"color":      &graphql.Field{Type: graphql.String},
			"center":     &graphql.Field{Type: geoPointType},
			"radius":     &graphql.Field{Type: graphql.Float},
			"path":       &graphql.Field{Type: graphql.NewList(geoPointType)},
		},
	})

	acceleratorType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Accelerator",
		Fields: graphql.Fields{
			"key":       &graphql.Field{Type: graphql.String},
			"name":      &graphql.Field{Type: graphql.String},
			"kind":      kindField,
			"reference": &graphql.Field{Type: geoPointType},
			"color":     &graphql.Field{Type: graphql.String},
			"radius":    &graphql.Field{Type: graphql.Float},
			"length":    &graphql.Field{Type: graphql.Float},
			"direction": &graphql.Field{Type: graphql.Float},
			"width":     &graphql.Field{Type: graphql.Float},
			"height":    &graphql.Field{Type: graphql.Float},
			"rotation":  &graphql.Field{Type: graphql.Float},
			"poi_count": &graphql.Field{Type: graphql.Int},
		},
	})

	placedType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PlacedAccelerator",
		Fields: graphql.Fields{
			"key":                &graphql.Field{Type: graphql.String},
			"shape":              &graphql.Field{Type: shapeType},
			"points_of_interest": &graphql.Field{Type: graphql.NewList(poiType)},
		},
	})

	warningType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Warning",
		Fields: graphql.Fields{
			"code":    &graphql.Field{Type: graphql.String},
			"name":    &graphql.Field{Type: graphql.String},
			"message": &graphql.Field{Type: graphql.String},
		},
	})

	overlayType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Overlay",
		Fields: graphql.Fields{
			"reference":    &graphql.Field{Type: geoPointType},
			"zone":         &graphql.Field{Type: graphql.String},
			"rotation":     &graphql.Field{Type: graphql.Float},
			"accelerators": &graphql.Field{Type: graphql.NewList(placedType)},
			"warnings":     &graphql.Field{Type: graphql.NewList(warningType)},
		},
	})

	zoneType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Zone",
		Fields: graphql.Fields{
			"zone":             &graphql.Field{Type: graphql.String},
			"epsg":             &graphql.Field{Type: graphql.Int},
			"number":           &graphql.Field{Type: graphql.Int},
			"south":            &graphql.Field{Type: graphql.Boolean},
			"central_meridian": &graphql.Field{Type: graphql.Float},
		},
	})

	measurementType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Measurement",
		Fields: graphql.Fields{
			"from":     &graphql.Field{Type: geoPointType},
			"to":       &graphql.Field{Type: geoPointType},
			"distance": &graphql.Field{Type: graphql.Float},
			"bearing":  &graphql.Field{Type: graphql.Float},
		},
	})

	offsetType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Offset",
		Fields: graphql.Fields{
			"dx":   &graphql.Field{Type: graphql.Float},
			"dy":   &graphql.Field{Type: graphql.Float},
			"zone": &graphql.Field{Type: graphql.String},
		},
	})

	detectorType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Detector",
		Fields: graphql.Fields{
			"name":     &graphql.Field{Type: graphql.String},
			"position": &graphql.Field{Type: geoPointType},
			"angle":    &graphql.Field{Type: graphql.Float},
		},
	})

	festivalType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Festival",
		Fields: graphql.Fields{
			"name":           &graphql.Field{Type: graphql.String},
			"slug":           &graphql.Field{Type: graphql.String},
			"location":       &graphql.Field{Type: geoPointType},
			"angle":          &graphql.Field{Type: graphql.Float},
			"allow_rotation": &graphql.Field{Type: graphql.Boolean},
		},
	})

	markerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Marker",
		Fields: graphql.Fields{
			"name":     &graphql.Field{Type: graphql.String},
			"position": &graphql.Field{Type: geoPointType},
			"angle":    &graphql.Field{Type: graphql.Float},
		},
	})

	ringType := graphql.NewObject(graphql.ObjectConfig{
		Name: "MarkerRing",
		Fields: graphql.Fields{
			"festival": &graphql.Field{Type: graphql.String},
			"rotation": &graphql.Field{Type: graphql.Float},
			"center":   &graphql.Field{Type: geoPointType},
			"radius":   &graphql.Field{Type: graphql.Float},
			"markers":  &graphql.Field{Type: graphql.NewList(markerType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"accelerators": &graphql.Field{
				Type:        graphql.NewList(acceleratorType),
				Description: "List the accelerator catalog",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Accelerators.List(p.Context), nil
				},
			},
			"accelerator": &graphql.Field{
				Type:        acceleratorType,
				Description: "Get an accelerator by key",
				Args: graphql.FieldConfigArgument{
					"key": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Accelerators.Get(p.Context, p.Args["key"].(string))
				},
			},
			"overlay": &graphql.Field{
				Type:        overlayType,
				Description: "Place accelerators at a reference point",
				Args: graphql.FieldConfigArgument{
					"lat":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"names":    &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"rotation": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 0.0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var names []string
					if raw, ok := p.Args["names"].([]interface{}); ok {
						for _, n := range raw {
							if s, ok := n.(string); ok {
								names = append(names, registry.ParseNames(s)...)
							}
						}
					}
					return deps.Accelerators.Overlay(p.Context, usecases.OverlayRequest{
						Reference: domain.GeoPoint{Lat: p.Args["lat"].(float64), Lng: p.Args["lng"].(float64)},
						Names:     names,
						Rotation:  p.Args["rotation"].(float64),
					})
				},
			},
			"zone": &graphql.Field{
				Type:        zoneType,
				Description: "Resolve the UTM zone of a point",
				Args: graphql.FieldConfigArgument{
					"lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					z := deps.Geodesy.Zone(domain.GeoPoint{Lat: p.Args["lat"].(float64), Lng: p.Args["lng"].(float64)})
					return ZoneInfo{
						Zone:            z.String(),
						EPSG:            z.EPSG(),
						Number:          z.Number,
						South:           z.South,
						CentralMeridian: z.CentralMeridian(),
					}, nil
				},
			},
			"destination": &graphql.Field{
				Type:        geoPointType,
				Description: "Walk a distance in meters along a bearing",
				Args: graphql.FieldConfigArgument{
					"lat":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"bearing":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"distance": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					start := domain.GeoPoint{Lat: p.Args["lat"].(float64), Lng: p.Args["lng"].(float64)}
					return deps.Geodesy.Destination(start, p.Args["bearing"].(float64), p.Args["distance"].(float64)), nil
				},
			},
			"measure": &graphql.Field{
				Type:        measurementType,
				Description: "Distance and initial bearing between two points",
				Args: graphql.FieldConfigArgument{
					"lat":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"toLat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"toLng": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					from := domain.GeoPoint{Lat: p.Args["lat"].(float64), Lng: p.Args["lng"].(float64)}
					to := domain.GeoPoint{Lat: p.Args["toLat"].(float64), Lng: p.Args["toLng"].(float64)}
					return deps.Geodesy.Measure(from, to), nil
				},
			},
			"offset": &graphql.Field{
				Type:        offsetType,
				Description: "Planar offset carrying origin onto reference, in the reference's zone",
				Args: graphql.FieldConfigArgument{
					"lat":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"originLat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"originLng": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ref := domain.GeoPoint{Lat: p.Args["lat"].(float64), Lng: p.Args["lng"].(float64)}
					origin := domain.GeoPoint{Lat: p.Args["originLat"].(float64), Lng: p.Args["originLng"].(float64)}
					off, err := deps.Geodesy.Translate(p.Context, ref, origin)
					if err != nil {
						return nil, err
					}
					return map[string]interface{}{"dx": off.DX, "dy": off.DY, "zone": off.Zone.String()}, nil
				},
			},
			"detectors": &graphql.Field{
				Type:        graphql.NewList(detectorType),
				Description: "List the access points of the detector ring",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Markers.Detectors(p.Context), nil
				},
			},
			"festivals": &graphql.Field{
				Type:        graphql.NewList(festivalType),
				Description: "List venues for the detector ring",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Markers.Festivals(p.Context), nil
				},
			},
			"markerRing": &graphql.Field{
				Type:        ringType,
				Description: "Place the detector ring around a festival",
				Args: graphql.FieldConfigArgument{
					"festival": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"rotation": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 0.0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Markers.Ring(p.Context, p.Args["festival"].(string), p.Args["rotation"].(float64))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
