// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the assistance-matching engine. It implements
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - RequestRanker: A domain service that ranks pending requests for a
//     volunteer by travel distance within the admissible matching band
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
