// Package widgets implements the dashboard side of the core: the ordered
// widget configuration registry, the pending link table, and the auto-link
// reconciler that binds freshly created items to waiting widgets.
//
// Key Implementations:
//   - [Registry] : Ordered widget descriptors; order values always form a dense 0..N-1 permutation
//   - [PendingTable] : At most one outstanding item-creation request per widget
//   - [Reconciler] : Synchronous scan-and-bind on item creation
package widgets
