// Package common holds the pieces shared by the library packages and the CLI:
// the workload configuration and the project loggers.
//
// Configuration:
//
//	WorkloadConfig describes a simulated run (seed data, workers, operation
//	mix). It is filled from command line flags and environment variables by
//	the cmd package, validated with Validate and printed with String.
//
// Logging:
//
//	All packages log through dragonboat's logger registry
//	(logger.GetLogger(name)). InitLoggers installs CreateLogger as the global
//	factory, which writes "LEVEL | name | message" lines to stdout, and sets
//	the level of every project logger (store, workload, cli).
package common
