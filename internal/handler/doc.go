// Package handler contains the HTTP layer of the hotel management backend.
// Handlers live in domain subpackages (currently hotel).
//
// This file exists so tooling (e.g. `swag init --dir ./internal/handler`) can
// treat `internal/handler` as a valid Go package and avoid "no Go files" warnings.
package handler
