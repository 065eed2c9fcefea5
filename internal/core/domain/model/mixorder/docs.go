// Package mixorder implements the MixOrder aggregate: a planned or executing
// production run against a recipe, either at the plant or on a mobile unit at
// a customer site.
//
// Lifecycle:
//
//	Draft ──> Staged ──> Running ──> Completed
//	            │          │  ▲
//	            └──> Hold <┘  │ (Resume)
//	                  └───────┘
//	any non-terminal state ──> Aborted
//
// A MixOrder is an immutable value. Every operation returns a new snapshot and
// leaves the receiver untouched; an error means nothing changed.
//
// Key business rules:
//   - Mobile orders carry both a site location and a mobile unit
//   - Steps run strictly one after another: a step can only be appended once the previous one has ended
//   - An ended step must end after it started
package mixorder
