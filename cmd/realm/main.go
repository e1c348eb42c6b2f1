package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	realmcmd "github.com/louisbranch/idlerealm/internal/cmd/realm"
)

func main() {
	cfg, err := realmcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[REALM] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := realmcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
