// Package commands defines the counterctl CLI.
//
// Commands
//
//   - run      Dispatch counter steps given as arguments
//   - script   Dispatch the actions listed in a YAML script
//   - breeds   Fetch dog breeds through the API cache
//
// The root command loads configuration from the environment (and .env) and
// builds the application store before any subcommand runs.
package commands
