/*
Package ports defines the driven ports (interfaces) for the unixtime toolkit.

These interfaces decouple the command logic from the editor that hosts it,
allowing the same router to run against a terminal, a file on disk, an HTTP
client or an MCP agent.

# Key Interfaces

  - Host: The editor capabilities a command may call into (selection, prompt, log, messages).
  - OutputLog: The shared, append-only log surface used when no document is active.
*/
package ports
