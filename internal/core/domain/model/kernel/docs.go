// Package kernel provides core domain primitives and utilities for the
// assistance-matching engine. It implements fundamental building blocks
// following Domain-Driven Design principles that are used throughout the
// domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - GeoPoint: A value object for geocoded coordinates with great-circle
//     distance and constant-speed travel time estimation
//   - The matching band constants bounding how far a request may be from a
//     volunteer's home coordinate to still be considered reachable
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
//
// The package follows Domain-Driven Design best practices, providing rich domain
// behavior and encapsulation of implementation details.
package kernel
