// Package printing implements the PDF pipeline: image resolution, sheet
// HTML generation from composed pages, Chrome-based PDF rendering, and
// output storage.
package printing
