// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/mini-bmc/mini-bmc/pkg/log"
	"github.com/mini-bmc/mini-bmc/service/operator"
)

func main() {
	// Real BMCs are memory-starved; keep the simulator honest.
	debug.SetMemoryLimit(256 * 1024 * 1024)

	l := log.NewDefaultLogger()
	log.RedirectStdLog(l)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	op := operator.New(
		operator.WithName("mini-bmc"),
	)

	if err := op.Run(ctx, nil); err != nil {
		l.Error("BMC simulator exited with error", "error", err)
		os.Exit(1)
	}
}
