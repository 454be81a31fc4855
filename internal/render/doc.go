// Package render binds invoice data into HTML templates.
//
// Templates are parsed and executed with html/template. Character references
// in the resulting text nodes are then decoded, so "&euro;" in a template and
// an apostrophe escaped during execution reach the output as literal
// characters, while "&lt;", "&gt;" and "&amp;" stay escaped. Attribute values
// are left as html/template wrote them. Each Render call builds its own function
// map; nothing is registered globally and an Engine may be shared between
// goroutines.
//
// Helpers available to templates:
//
//	sum a b ...         decimal sum, non-numeric arguments skipped
//	product a b ...     decimal product, 1 for no arguments
//	format x            fixed-point string with two decimals
//	subtotal items      Σ amount × quantity
//	taxtotal items      Σ tax × quantity
//	grandtotal items    Σ (amount + tax) × quantity
//	currency code x     x formatted with the conventions of an ISO 4217 code
//	date layout d       d (ISO date, RFC 3339 or "today") in a layout such as
//	                    "DD/MM/YYYY" or a preset: iso, european, us, long
//	markdown s          s rendered as Markdown (GFM), raw HTML omitted
package render
