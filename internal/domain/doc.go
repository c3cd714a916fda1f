// Package domain contains the core domain model for MarbleMachine.
//
// The domain is I/O- and dialect-agnostic: it does not depend on image
// decoding, YAML parsing, the filesystem, or the textual G-code syntax.
// Infra/adapters map into/from these types.
package domain
