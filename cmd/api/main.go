package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/eskrenkovic/table-scheduler/internal/config"
	"github.com/eskrenkovic/table-scheduler/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) > 1 {
		rootPath := os.Args[1]
		if rootPath == "" {
			log.Fatal("root directory path is empty")
		}

		if err := godotenv.Load(path.Join(rootPath, "config.env")); err != nil {
			log.Fatal(err)
		}

		if _, ok := os.LookupEnv(config.RootPathEnv); !ok {
			if err := os.Setenv(config.RootPathEnv, rootPath); err != nil {
				log.Fatal(err)
			}
		}
	}

	config, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	server, err := server.NewHTTPServer(config)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		errs <- server.Start()
	}()

	select {
	case err = <-errs:
	case <-ctx.Done():
	}

	if stopErr := server.Stop(); stopErr != nil && err == nil {
		err = stopErr
	}

	if err != nil {
		log.Fatal(err)
	}
}
