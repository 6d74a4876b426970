package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/litebase/blockfs/pkg/cli/cmd"
	"github.com/litebase/blockfs/pkg/config"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	godotenv.Load()
}

func main() {
	if err := cmd.NewRoot(config.NewConfig()).Execute(); err != nil {
		os.Exit(1)
	}
}
