// Package printing holds the pure print composition model: queue
// expansion, per-cell layout composition, and sheet pagination. It has
// no rendering or I/O concerns; the PDF pipeline in
// internal/infrastructure/printing consumes its output.
package printing
