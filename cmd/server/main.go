package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/pos_orders/config"
	"github.com/Gunvolt24/pos_orders/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	// .env.local: необязательный; переменные окружения важнее.
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := app.Bootstrap(ctx, &cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
		os.Exit(1)
	}

	runErr := application.Run(ctx)
	cleanup()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "server stopped with error: %v\n", runErr)
		os.Exit(1)
	}
}
