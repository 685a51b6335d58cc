// Package models contains GORM persistence models and their conversions
// to and from domain types. Keeping the mapping here lets the domain
// aggregates stay free of storage tags for nested structures.
package models
