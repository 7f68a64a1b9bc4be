// Package domain defines the core entities of the Parley dialogue runtime:
// the compiled resource document (titles + keyed lines), the expression
// primitives (clauses, tokens, replacements), the boundary types handed back
// to the host, and the error and event kinds of the public contract.
//
// Everything in this package is plain data. Behavior lives in the runtime
// and evaluator packages; adapters serialize these types as-is.
package domain
