package main

import (
	"context"
	"log"
	"os"

	"github.com/Fury174k/pharmstock/internal/buildinfo"
	"github.com/Fury174k/pharmstock/internal/server"
	"github.com/Fury174k/pharmstock/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
