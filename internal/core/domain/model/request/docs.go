// Package request provides domain entities and business logic for assistance
// request management. It implements the AssistanceRequest aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - AssistanceRequest: The aggregate root managing request identity, properties, and lifecycle
//   - Status: A state machine that enforces valid status transitions
//   - Kind, Category, Priority: Classification enums with wire-name parsing
//
// Key business rules:
//   - Requests must have valid requester and address references
//   - Category is required exactly when the kind is volunteer-assistance
//   - Status follows a defined workflow: Pending -> Approved -> Completed
//   - The assigned volunteer is set if and only if the request is Approved or Completed
//   - Per-volunteer rejection accumulates monotonically and never changes state
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package request
