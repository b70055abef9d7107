/*
Package domain contains the core domain models of the unixtime toolkit.

It defines the values that flow through a single command invocation: the
selection a command reads from, the sink its result is routed to, and the
outcome reported back to the caller. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - CommandID: The identity of one of the three externally invocable commands.
  - Range / Selection: Byte offsets into an editable document plus the text they cover.
  - Sink: Where a transform result is delivered (the selection or the output log).
  - Outcome: What happened during one invocation (replaced, logged, inserted, cancelled, failed).
*/
package domain
