package domain

import "strings"

// Slugify lowercases name, turns spaces into hyphens and drops anything
// outside [a-z0-9-].
func Slugify(name string) string {
	lower := strings.ToLower(name)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case r == '-', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ClassName builds the display class for a shape kind.
func ClassName(kind ShapeKind, name string) string {
	slug := Slugify(name)
	switch kind {
	case ShapeCircle:
		return "accelerator accelerator-circle " + slug + " accelerator-part"
	case ShapePolyline:
		return "accelerator accelerator-linear " + slug
	case ShapePolygon:
		return "accelerator accelerator-rounded-rectangle " + slug
	default:
		return "accelerator " + slug
	}
}
