// Package user implements the identity side of the card directory: user
// registration, login, profile reads/updates, the business flag toggle and
// account deletion.
//
// Layering:
// - domain: user entity, actor, authorization policy, errors
// - application: commands/queries using explicit ports
// - ports: persistence, credential, and cascade boundaries
// - adapters: HTTP, memory, postgres, mongo, and credential implementations
// - transport: module-private DTOs and validation schemas for HTTP contracts
//
// Boundary notes:
// - Card ownership cleanup is reached only through ports.CardPurger.
// - Do not import other context adapters into domain/application.
package user
