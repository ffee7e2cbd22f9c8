// Package testing provides standardised tests and benchmarks for
// store implementations that satisfy the social.IStore interface.
//
// The package contains:
//   - testing: A conformance suite covering every operation, the counter
//     invariants, the documented quirks (dangling references, view side
//     effect) and concurrent access
//   - benchmark: Parallel benchmarks for the common operations and a mixed workload
//
// Example usage:
//
//	// Creating a factory function for your implementation
//	factory := func() social.IStore {
//		return NewMyStore()
//	}
//
//	// Running the standard test suite
//	socialtesting.RunStoreTests(t, "MyStore", factory)
//
//	// Running performance benchmarks
//	socialtesting.RunStoreBenchmarks(b, "MyStore", factory)
package testing
