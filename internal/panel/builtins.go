package panel

import (
	"errors"

	"github.com/five82/dashtrash/internal/config"
)

// RegisterBuiltins installs the system, logs, temperature and clock panels.
func RegisterBuiltins(r *Registry) error {
	return errors.Join(
		r.Register(config.TypeSystem, NewSystem),
		r.Register(config.TypeLogs, NewLogs),
		r.Register(config.TypeTemperature, NewTemperature),
		r.Register(config.TypeClock, NewClock),
	)
}
