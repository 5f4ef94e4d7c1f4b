// Command sodactl runs document operations against a SODA collection.
//
//	sodactl --backend sql --config docstore.yaml ensure tickets
//	sodactl create tickets '{"title":"disk full","priority":3}'
//	sodactl filter tickets --where 'priority>2' --order-by priority --desc
//	sodactl --backend qbe filter tickets '{"status":{"$in":["open","stalled"]}}'
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
