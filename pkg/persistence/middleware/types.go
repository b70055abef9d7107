package middleware

import "github.com/aretw0/unixtime/pkg/ports"

// Middleware allows wrapping an OutputLog to add behavior.
type Middleware func(ports.OutputLog) ports.OutputLog
