/*
Package router implements the input/transform/output flow shared by the
conversion commands.

A single invocation is a linear sequence:

 1. Acquire: read the active selection, or prompt when there is none.
 2. Transform: call the transform exactly once.
 3. Deliver: replace the captured selection, or append to the output log when
    no document is active. Failures are reported once through the host.

Nothing escapes the router boundary: every error is shown to the user and
returned inside a domain.Outcome.
*/
package router
