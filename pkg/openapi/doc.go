// Package openapi exposes the public contracts for the loader and parser
// stages. Implementations live under internal/openapi to keep kin-openapi
// dependencies hidden from consumers.
package openapi
