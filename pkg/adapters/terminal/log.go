package terminal

import (
	"github.com/aretw0/unixtime/pkg/adapters/memory"
	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/aretw0/unixtime/pkg/ports"
)

func newDefaultLog() ports.OutputLog {
	return memory.NewLazyLog(domain.LogName, func() (ports.OutputLog, error) {
		return memory.NewLog(domain.LogName), nil
	})
}
