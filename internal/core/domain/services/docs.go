// Package services provides domain services for rules that need more than one
// aggregate snapshot or an outside fact (such as the recipe that runs next).
//
// The package includes:
//   - ChangeoverPlanner: decides whether and how a mobile unit must be cleaned
//     before switching to the next recipe
package services
