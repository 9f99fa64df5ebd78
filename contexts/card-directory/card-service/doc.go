// Package card implements the business-card side of the directory: public
// card reads, card publishing by business users, owner edits, owner or admin
// deletion, and per-user like toggles.
//
// Layering:
// - domain: card entity, actor, authorization policy, errors
// - application: commands/queries using explicit ports
// - ports: persistence and user-directory boundaries
// - adapters: HTTP, memory, postgres, and mongo implementations
// - transport: module-private DTOs and validation schemas for HTTP contracts
//
// Boundary notes:
// - Card owners are resolved through ports.UserDirectory, never by importing
//   the user-service context.
package card
