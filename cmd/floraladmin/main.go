package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/florelia/floraladmin/config"
	"github.com/florelia/floraladmin/internal/adminapi"
	"github.com/florelia/floraladmin/internal/app"
	"github.com/florelia/floraladmin/internal/webserver"
)

var (
	cfile   = flag.String("c", "floraladmin.yml", "config file")
	showVer = flag.Bool("v", false, "show version")
)

var (
	// set by the release build
	BuildVersion = "dev"
)

func main() {
	flag.Parse()
	if *showVer {
		fmt.Println("floraladmin", BuildVersion)
		return
	}

	cfg := config.LoadConfig(*cfile)

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "init failed:", err)
		os.Exit(1)
	}
	defer application.Release()

	webserver.Init(application)
	adminapi.Register()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigc
		zap.S().Infof("received signal %s, shutting down", s)
		webserver.Stop()
	}()

	if err := webserver.Listen(); err != nil {
		zap.S().Errorf("webserver stopped: %s", err)
	}
}
