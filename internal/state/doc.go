// Package state owns the pokesearch view state and its transitions.
//
// # Overview
//
// The Controller is the only writer of the View. The UI calls transition
// methods in response to user input and renders Snapshot results; it never
// mutates the View directly.
//
//	UI event:                       Controller:
//	┌──────────────────┐           ┌─────────────────────┐
//	│ Submit / Next    │──────────→│ update page, term    │
//	│                  │           │ Loading = true       │
//	│                  │←──────────│ return Request{Seq}  │
//	│ run resolver     │           │                      │
//	│ OnResolved(Seq)  │──────────→│ apply or drop stale  │
//	│ Snapshot()       │←──────────│ defensive copy       │
//	└──────────────────┘           └─────────────────────┘
//
// # Requests
//
// Transitions that need data return a Request rather than fetching. Each
// Request carries a monotonically increasing sequence number, and OnResolved
// only applies the outcome whose Seq matches the most recent Request. A slow
// response for an earlier page can therefore never overwrite a newer one.
//
// # Invariants
//
//   - Page is always >= 1 and never exceeds ceil(Count/Limit) through navigation.
//   - Loading is true exactly while the latest Request is outstanding.
//   - Error and a non-empty Items list are never set together.
//   - Submit trims the input; an empty result clears the term and returns to
//     browse mode.
//
// The committed search term is persisted through an injected prefs.TermStore,
// written on every non-empty submit and deleted when the search is cleared.
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use. Snapshot returns a copy
// whose Items slice is independent of the stored state.
package state
