// Package revoice generates invoice documents (HTML and PDF) from structured
// invoice data and a template.
//
// # Quick Start
//
//	gen, err := revoice.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data := revoice.InvoiceData{
//	    "number":   "2024-001",
//	    "currency": "EUR",
//	    "items": []any{
//	        map[string]any{"description": "Consulting", "amount": 500, "tax": 100, "quantity": 2},
//	    },
//	}
//
//	res, err := gen.GenerateHTMLInvoice(ctx, data, revoice.Options{
//	    Destination:  "./invoices",
//	    Nomenclature: revoice.NomenclatureHash,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.PDFPath)
//
// # Pipeline
//
//  1. Validation against the bundled CUE schema (every violation reported)
//  2. Template loading: alphanumeric identifiers name bundled templates,
//     anything else is a filesystem path
//  3. Rendering with html/template and the invoice helpers (sum, product,
//     format, subtotal, taxtotal, grandtotal, currency)
//  4. HTML written to <destination>/<name>.html
//  5. PDF printed by headless Chrome (go-rod) to <destination>/<name>.pdf
//
// GenerateInvoice stops after step 3 and returns the HTML text.
//
// # File Names
//
// Options.Name wins. Otherwise Nomenclature "hash" names both files after
// the hex BLAKE2b-512 digest of the rendered HTML, so identical invoices map
// to identical files. Without either, files are named "index".
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package revoice
