// Package ports defines the boundary interfaces between the Parley runtime
// and its host: state providers (the host-owned objects script expressions
// read and write), resource loaders, and session stores. Adapters implement
// these; the runtime only ever depends on the interfaces.
package ports
