// Package receiving implements the goods-receiving reconciliation engine:
// the "triple-check" flow used when a delivery arrives. For every line item
// it reconciles three independently sourced quantities (what was ordered,
// what the photographed invoice says was invoiced, and what a staff member
// physically counts) and then commits an all-items stock update.
//
// # Session lifecycle
//
// The Manager holds at most one live Session per device and drives its
// state machine:
//
//	None → Draft → Adjusting ⇄ Adjusting → Committing → None       (success)
//	                                      → Committing → Adjusting (failure, error attached)
//	Cancel from Draft or Adjusting → None
//
// A session is built either from an extraction draft (InitializeSession) or
// from a pending supplier order (InitializeFromOrder); its item set is fixed
// at that point. Sessions live only in memory and do not survive a restart.
//
// # Commit semantics
//
// The commit applies one independent write per session item, in order, with
// no cross-item transaction. Receiving is additive: counted quantities are
// added to current stock, never substituted for it. On the first per-item
// failure the remainder is not attempted and a CommitError reports which
// items were applied, which failed, and which remain; the session returns to
// Adjusting with all count work preserved, and a retry skips the items that
// already went through.
//
// Invoiced-vs-counted mismatches are flagged per item but never block the
// commit. That is a deliberate product choice favoring speed at the
// receiving dock over strict correction.
package receiving
