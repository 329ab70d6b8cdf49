package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/Amanch200309/Distributed_systems/fileexchange/base"
	"github.com/Amanch200309/Distributed_systems/fileexchange/config"
	"github.com/Amanch200309/Distributed_systems/fileexchange/server"
	"github.com/Amanch200309/Distributed_systems/fileexchange/transcript"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	// a bare port argument still works: ./fileexchange 5067
	if flag.NArg() > 0 {
		port, err := strconv.Atoi(flag.Arg(0))
		if err != nil {
			fmt.Println("port must be a number:", flag.Arg(0))
			os.Exit(2)
		}
		cfg.Port = port
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("error:", err)
		flag.Usage()
		os.Exit(2)
	}

	tr, err := transcript.Open(cfg.LogPath)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
	defer tr.Close()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	srv := server.New(cfg, tr, logger)
	b := &base.BaseServer{Maxconn: cfg.Maxconn, Logger: logger}

	logger.Printf("serving %s, uploads to %s, listening on port %d", cfg.FileRoot, cfg.UploadRoot, cfg.Port)
	if err := b.Listen(cfg.Addr(), srv.Serve); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
