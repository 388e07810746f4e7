// Package cli implements the command-line interface for the devengine tool.
//
// # Overview
//
// devengine compiles an application topology (tiers, storage, networking and
// access control) into a deterministic set of Kubernetes manifests. The same
// compiler backs the HTTP API started by the serve command.
//
// # Commands
//
// generate - Compile a topology into manifests:
//
//	devengine generate --input topology.yaml                 # YAML stream on stdout
//	devengine generate -i topology.yaml -o ./manifests       # one file per manifest
//	devengine generate -i topology.yaml -o out.zip --zip     # zip archive
//	devengine generate -i topology.json --strict-volumes     # fail on incomplete PVs
//
// validate - Report violations and warnings without writing manifests:
//
//	devengine validate --input topology.yaml [--format yaml|json|table] [--fail-on-error]
//
// serve - Run the API server:
//
//	devengine serve --port 8080 [--redis-addr localhost:6379]
//
// template - Manage saved templates in Redis:
//
//	devengine template save web-dev --file deployment.yaml
//	devengine template get web-dev
//	devengine template list --format table
//	devengine template delete web-dev
//
// # Global Flags
//
//	--debug        Enable debug logging
//	--log-json     Output logs in JSON format
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Environment Variables
//
//	LOG_LEVEL                 Set logging verbosity (debug, info, warn, error)
//	REDIS_ADDR                Redis address for the template store
//	PORT                      Listen port for serve
//	RATE_LIMIT                Requests per second for serve
//	DEVENGINE_STRICT_VOLUMES  Default for generate --strict-volumes
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, invalid topology, execution failure)
//	2  Context canceled or timeout
//
// Logs go to stderr so manifests written to stdout can be piped to kubectl.
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/Arunachalam-140897/DevEngine/pkg/cli.version=1.0.0'"
package cli
