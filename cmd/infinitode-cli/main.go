package main

import (
	"infinitode-go/cmd/infinitode-cli/commands"
	"infinitode-go/lib/telemetry"
	"infinitode-go/lib/util/serviceutil"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "infinitode-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(ctx)
}
