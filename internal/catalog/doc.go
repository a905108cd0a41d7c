// Package catalog holds the simulated cluster state served by the sandbox.
//
// It provides two things:
//
//   - The kind registry: the four simulated resource kinds (pods, services,
//     deployments, nodes), their aliases and their API group versions. Alias
//     folding happens once through Normalize.
//   - Catalog: an immutable, ordered snapshot of records per kind. The
//     built-in snapshot comes from Default; alternate snapshots can be built
//     with New or loaded from a YAML document with LoadFile.
//
// Record order is display order.
package catalog
