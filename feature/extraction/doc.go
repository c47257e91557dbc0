// Package extraction calls the external invoice recognition service and turns
// a photographed or scanned delivery document into a structured draft.
//
// The recognition call is the slowest operation in the product (observed up to
// ~60s), so the client carries its own timeout and callers are expected to
// show a blocking "processing" state while it runs. There are no automatic
// retries; every retry is a fresh user-initiated scan.
//
// # Error taxonomy
//
//   - ErrTimeout: no response within the configured timeout.
//   - ErrNetwork: transport failure or a non-success status from the service.
//   - ErrParse: the response is not valid structured data. Markdown fences
//     around the payload are stripped defensively before this is raised.
//
// On any failure no receiving session is created.
//
// # Archive
//
// After a successful extraction the raw document is backed up to object
// storage under the invoices bucket. The backup is best-effort: a failed
// upload is logged and never fails the scan.
package extraction
