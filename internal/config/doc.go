// Package config handles loading pokesearch configuration.
//
// # Overview
//
// Configuration comes from three layers, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, ~/.config/pokesearch/config.toml unless a path is given
//  3. POKESEARCH_* environment variables, optionally seeded from a dotenv file
//     via LoadEnvFile
//
// A missing config file is NOT an error; defaults are used instead so the
// tool works out of the box against the public PokéAPI.
//
// # Default Values
//
//   - API URL: https://pokeapi.co/api/v2/
//   - Page limit: 20 (valid range 1..100)
//   - Request timeout: 10s
//   - Fetch concurrency: 20 detail requests in flight (0 = unbounded)
//   - Log file: ~/.local/state/pokesearch/pokesearch.log
//   - Log level: info
//   - Prefs file: ~/.config/pokesearch/prefs.toml
//
// # TOML Format
//
//	api_url = "https://pokeapi.co/api/v2/"
//	page_limit = 20
//	request_timeout = "10s"
//	fetch_concurrency = 20
//	log_file = "~/.local/state/pokesearch/pokesearch.log"
//	log_level = "info"
//	prefs_path = "~/.config/pokesearch/prefs.toml"
//
// Every field is optional. Tilde expansion is performed for path fields.
//
// # Environment
//
//   - POKESEARCH_API_URL
//   - POKESEARCH_PAGE_LIMIT
//   - POKESEARCH_REQUEST_TIMEOUT (Go duration, e.g. "2s")
//   - POKESEARCH_FETCH_CONCURRENCY
//   - POKESEARCH_LOG_FILE
//   - POKESEARCH_LOG_LEVEL
//   - POKESEARCH_PREFS
//
// Blank variables are ignored.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors and unparseable durations or numbers
//   - Values outside their valid range
package config
