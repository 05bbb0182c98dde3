package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"weighttrack/internal/cli"
	"weighttrack/internal/logger"
)

var version = "dev"

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	var root cli.Root
	kctx := kong.Parse(&root, cli.Options(version)...)

	if err := logger.Init(logger.Config{Level: root.LogLevel, File: root.LogFile}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, sessions, err := cli.OpenStore(root.StoreConfig())
	if err != nil {
		logger.Fatal("open store", "store", root.Store, "err", err)
	}

	appCtx := cli.NewContext(context.Background(), store, sessions, os.Stdout)
	err = kctx.Run(appCtx)
	if cerr := store.Close(); cerr != nil {
		logger.Warn("close store", "err", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
