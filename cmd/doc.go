// Package cmd implements the command-line interface of socialKV.
//
// The package is organized into several subpackages:
//
//   - demo: Runs a short scripted scenario against a fresh store and prints every step as JSON
//   - simulate: Seeds a store and runs a concurrent, randomized workload against it
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Every flag can also be set with an environment variable of the form
// SOCIALKV_<FLAG> (e.g. SOCIALKV_LOG_LEVEL=debug), also read from .env and
// .env.local in the working directory.
//
// See socialkv -help for a list of all commands.
package cmd
