// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentSource: Discovers and parses dose reports from a folder
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - Exporter: Serialises a displayed view to a delimited file. Only
//     needed by commands that export.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
