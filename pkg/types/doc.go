// Package types provides shared type definitions used across the tallysheet packages.
//
// SourceID and ResourceType are referenced by sources, authority, provenance
// and resolver; keeping them here avoids import cycles.
//
//nolint:revive // Package name 'types' is appropriate for common type definitions
package types
