// Package venue defines the contract every venue handler satisfies: given a
// forward-looking window, produce an ordered list of canonical events for
// one venue. Concrete handlers live in subpackages, one per listing source,
// and are assembled into an ordered Registry at startup.
package venue
