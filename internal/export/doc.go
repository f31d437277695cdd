// Package export writes cam runs to files: the SVG drawing, plain text
// point and friction tables, a friction chart and a JSON document.
package export
