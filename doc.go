/*
Package unixtime inserts and converts Unix timestamps inside an editor.

It exposes three commands: insert the current timestamp at the cursor, convert
a timestamp to a human-readable date, and convert a date back to a timestamp.
The conversions read the active selection (or prompt for text when nothing is
selected) and either replace the selection or, when no document is open,
append the result to a shared output log named "Unix Time Utility".

# Concept

The library never talks to an editor directly. Every command runs against a
ports.Host, a small capability interface (selection, prompt, log, messages).
Adapters provide hosts for an in-memory buffer, a file on disk, a terminal, an
HTTP client and an MCP agent.

# Usage

	package main

	import (
		"context"
		"fmt"

		"github.com/aretw0/unixtime"
		"github.com/aretw0/unixtime/pkg/adapters/memory"
		"github.com/aretw0/unixtime/pkg/domain"
	)

	func main() {
		doc := memory.NewDocument("expires=1609459200")
		_ = doc.Select(domain.Range{Start: 8, End: 18})

		u := unixtime.New()
		out := u.ConvertUnixToHuman(context.Background(), memory.NewHost(memory.WithDocument(doc)))
		fmt.Println(out.Status, doc.Text())
	}
*/
package unixtime
