// Package orders provides read access to pending supplier orders awaiting
// delivery and the single write this core is allowed: flipping an order to
// "received" after a fully successful receiving commit tied to it.
//
// Orders are created by an external ordering flow and are never modified
// here beyond the status transition.
package orders
