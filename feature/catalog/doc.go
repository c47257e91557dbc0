// Package catalog provides read and write access to the inventory catalog
// and supplier metadata for a business.
//
// Reads go to the remote store and fall back to a local sqlite mirror when
// the remote store is unreachable, so the receiving flow can keep matching
// line items while offline. Successful remote reads refresh the mirror
// best-effort; there is no write-through.
//
// Writes are performed only by the stock commit service (additive receiving
// deltas plus new item creation) and by the manual adjustment endpoint,
// which sets current_stock to an absolute value. The two write semantics are
// intentionally distinct operations.
package catalog
