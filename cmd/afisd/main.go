// Command afisd serves minutiae matching, identification and likelihood
// ratio evaluation over HTTP.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jtejido/afislr/internal/afis"
	"github.com/jtejido/afislr/internal/config"
	"github.com/jtejido/afislr/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a .toml or .yaml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	out, err := logging.Setup(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	db := afis.NewDatabase(cfg.AFIS)
	db.SetLogger(log.Default())

	app := newApp(cfg, db, out)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Println("Shutting down")
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	log.Println("Server starting on", cfg.Server.Addr)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		log.Printf("Listen: %v", err)
	}
}
