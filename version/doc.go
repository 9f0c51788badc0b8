// Package version reports the toolbox build.
//
// Version, Commit and Date are injected at link time:
//
//	go build -ldflags "-X github.com/toolbox-cli/toolbox/version.Version=v0.3.0 \
//	  -X github.com/toolbox-cli/toolbox/version.Commit=$(git rev-parse HEAD) \
//	  -X github.com/toolbox-cli/toolbox/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Builds without ldflags (go install, go run) fall back to the module and
// VCS information embedded by the Go toolchain.
package version
