// Command c4verify is a demonstration entry point for the stateless proof
// verifier: it reads a hex-encoded C4Request envelope from a file (or
// stdin), dispatches it against an empty in-memory sync-committee cache,
// and prints the decoded VerifyResult. It performs no network I/O of its
// own — no RPC fan-out, no beacon-client polling, no HTTP server; supplying
// the envelope bytes and any bootstrap committee material is the caller's
// job.
//
// Usage:
//
//	c4verify -method eth_getBalance -in proof.hex
//	cat proof.hex | c4verify -method eth_getBalance
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/c4verify/lightclient/light"
	"github.com/c4verify/lightclient/log"
	"github.com/c4verify/lightclient/request"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0 -X main.commit=abc1234"
var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments and the input/output streams directly so it can be tested in
// isolation.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	cfg, exit, code := parseFlags(args)
	if exit {
		return code
	}

	logger := log.Default().Module("cmd")
	logger.Info("starting", "version", version, "commit", commit, "method", cfg.method)

	raw, err := readEnvelope(cfg.inPath, stdin)
	if err != nil {
		logger.Error("failed to read envelope", "error", err)
		return 1
	}

	cache := light.NewMemoryCommitteeCache()
	result := request.Dispatch(cfg.method, raw, cache)

	if !result.Success {
		logger.Warn("verification failed", "error", result.Err)
		fmt.Fprintf(stdout, "verification failed: %v\n", result.Err)
		if result.FirstMissingPeriod != nil {
			fmt.Fprintf(stdout, "missing sync committee periods %d..%d\n", *result.FirstMissingPeriod, *result.LastMissingPeriod)
		}
		return 1
	}

	logger.Info("verification succeeded")
	fmt.Fprintf(stdout, "verification succeeded: %#v\n", result.Data)
	return 0
}

type cliConfig struct {
	method string
	inPath string
}

// parseFlags parses CLI arguments into a cliConfig. Returns the config,
// whether the caller should exit immediately, and the exit code.
func parseFlags(args []string) (cliConfig, bool, int) {
	fs := flag.NewFlagSet("c4verify", flag.ContinueOnError)

	cfg := cliConfig{method: "eth_getBalance"}
	fs.StringVar(&cfg.method, "method", cfg.method, "JSON-RPC method name the proof is proxying")
	fs.StringVar(&cfg.inPath, "in", "", "path to a file containing a hex-encoded C4Request (default: stdin)")
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cfg, true, 2
	}
	if *showVersion {
		fmt.Printf("c4verify %s (%s)\n", version, commit)
		return cfg, true, 0
	}
	return cfg, false, 0
}

// readEnvelope reads hex-encoded envelope bytes from path, or from stdin
// when path is empty.
func readEnvelope(path string, stdin io.Reader) ([]byte, error) {
	var src io.Reader
	if path == "" {
		src = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src = f
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return hex.DecodeString(strings.TrimSpace(string(data)))
}
