package main

import (
	"fmt"
	"os"

	"github.com/btcsuite/btclog"
	"github.com/nPaBwaYT/desencoder/cripta"
)

var (
	// logBackend is the shared backend every subsystem logger writes to.
	// Log output goes to stderr so it never mixes with the results on
	// stdout.
	logBackend = btclog.NewBackend(os.Stderr)

	denLog = logBackend.Logger("DENC")
	desLog = logBackend.Logger(cripta.Subsystem)
)

func init() {
	cripta.UseLogger(desLog)
}

// setLogLevels sets the level of every subsystem logger.
func setLogLevels(debugLevel string) error {
	level, ok := btclog.LevelFromString(debugLevel)
	if !ok {
		return fmt.Errorf("the specified debug level [%v] is invalid",
			debugLevel)
	}

	denLog.SetLevel(level)
	desLog.SetLevel(level)

	return nil
}
