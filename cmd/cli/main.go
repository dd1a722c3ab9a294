package main

import (
	"context"
	"log"
	"os"

	"github.com/Fury174k/pharmstock/internal/buildinfo"
	"github.com/Fury174k/pharmstock/internal/client/cli"
	"github.com/Fury174k/pharmstock/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
