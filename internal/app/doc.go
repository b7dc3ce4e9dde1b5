// Package app is the composition root for pokesearch.
//
// # Overview
//
// Setup turns Options into an Env: it loads the dotenv file and config,
// opens the log file, and wires the PokéAPI client into the aggregator and
// resolver. Both the TUI (Run) and the headless lookup/list commands start
// from the same Env.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Setup()    │
//	└──────┬───────┘
//	       │
//	       ├─────> config.LoadEnvFile()  Seed POKESEARCH_* from .env
//	       ├─────> config.Load()         TOML file + env overrides
//	       ├─────> logging.New()         zap JSON logger on a file
//	       ├─────> pokeapi.NewClient()   HTTP client with timeout
//	       └─────> search.NewResolver()  Resolver over the aggregator
//
//	Run():
//	       ├─────> Env.Factory()         Builds controller + ui.Model
//	       └─────> ui.Run()              Boundary-wrapped program (blocks)
//
// The factory re-reads the prefs file on every call, so a reload after a
// render fault restores the persisted search term and theme exactly as a
// fresh start would.
//
// # Headless Use
//
// Lookup and List run a single resolve without the TUI; WriteOutcome prints
// the result as plain text and turns a failed outcome into an error.
package app
