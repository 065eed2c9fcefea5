// Package kernel provides the shared value objects of the production domain.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - IDGenerator: injectable identifier source (random in production, fixed in tests)
//   - Clock: injectable source of the current time
//   - GeoPoint: a validated latitude/longitude pair for plant and customer sites
//
// Values are immutable; zero values fail validation and must be obtained
// through the constructors.
package kernel
