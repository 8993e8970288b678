package main

import (
	"context"

	"mcdpromo-backend/cmd/mcdpromo/commands"
	"mcdpromo-backend/lib/serviceutil"
	"mcdpromo-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	t, _ := telemetry.SetupFromEnv(ctx, "mcdpromo")
	defer t.Shutdown(context.Background())
	telemetry.InitSlog(true)

	commands.ExecuteContext(ctx)
}
