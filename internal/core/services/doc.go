// Package services contains the core business logic implementing the
// driving port interfaces. Services depend only on domain types and
// driven ports; adapters are injected at construction.
//
// Import Rules:
//   - May import: core/domain, core/ports, logger
//   - Must NOT import: adapters
package services
