package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/casiec/internal/buildinfo"
	"github.com/dmitrijs2005/casiec/internal/server"
	"github.com/dmitrijs2005/casiec/internal/server/config"
)

func main() {

	buildinfo.Print(os.Stdout, "CASIEC backend")

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
