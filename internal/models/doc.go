// Package models defines the core domain models for the life-plan simulator.
//
// # Models
//
//   - User: a registered account identified by a unique email
//   - Simulation: a named, user-owned plan with a base age
//   - Entry: one age-indexed income or expense line item on a simulation
//   - Identity: the authenticated view of a User inside a request
//
// # Design Principles
//
//  1. Ownership is structural: Simulation carries the owner's UserID and every
//     query filters by it. Client-supplied user IDs are never trusted.
//  2. Amounts are non-negative integers; direction lives in EntryKind.
//  3. Avoid circular references: models reference each other by ID strings.
package models
