//go:build !linux

package adapter

import (
	"errors"

	"github.com/iuboy/bmclog/config"
	"github.com/iuboy/bmclog/core"
)

var ErrJournalUnavailable = errors.New("journal socket unavailable")

func newJournalTransport(config.JournalConfig) (core.Transport, error) {
	return nil, errors.Join(ErrJournalUnavailable, errors.New("journald is only available on linux"))
}
