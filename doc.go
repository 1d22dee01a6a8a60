/*
Package glimpse embeds a remote-inspection bridge into GUI applications
whose rendered document lives on a single UI thread.

External tools (CLIs, AI agents, debuggers) cannot touch that document
directly: every read crosses a thread boundary. Glimpse bridges the gap
with an ordered command relay. HTTP handlers submit typed inspection
commands, the host's UI loop drains them one at a time against the live
document, and each submitter waits on its own one-shot reply slot under a
deadline. The bridge stays bound to 127.0.0.1 and is meant for
development and diagnostics, not production exposure.

# Architecture

Three layers, hexagonally separated:

  - pkg/domain and pkg/inspect: typed commands and pure diagnostic
    algorithms (tree projection under budgets, visibility analysis, CSS
    class validation) over the ports.Document interface.
  - pkg/bridge: the relay itself. A bounded channel serializes commands;
    Serve is the single evaluation loop.
  - Adapters: the loopback HTTP front door, an HTML-backed document for
    demos and tests, and an MCP server exposing the bridge as agent
    tools.

# Usage

Start the bridge during application startup and drain it from the UI
loop:

	package main

	import (
		"context"
		"log"

		"github.com/glimpse-dev/glimpse"
	)

	func main() {
		ins, err := glimpse.Start("my-app")
		if err != nil {
			log.Fatal(err)
		}
		defer ins.Close(context.Background())

		// Inside the UI loop, where the live document is safe to touch:
		go func() {
			for {
				select {
				case <-ins.Done():
					return
				case cmd := <-ins.Commands():
					cmd.Resolve(evaluate(cmd.Req)) // host-specific
				}
			}
		}()

		runApp()
	}

Hosts whose document implements ports.Document can let the bridge drive
the loop instead: ins.Serve(ctx, doc, evaluator).

Then inspect from outside:

	curl http://127.0.0.1:9999/status
	glimpse diagnose
	glimpse mcp --transport stdio
*/
package glimpse
