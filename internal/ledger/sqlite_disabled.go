//go:build !sqlite
// +build !sqlite

package ledger

import (
	"errors"

	logx "dcptrack/pkg/logx"
)

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	_ = cfg
	_ = log
	return nil, errors.New("sqlite ledger requires building with -tags sqlite")
}
