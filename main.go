package main

import (
	"context"
	"log"

	"github.com/courtside/volley/game"
	"github.com/courtside/volley/server"
	"github.com/courtside/volley/store"
	"github.com/courtside/volley/troupe"
	"github.com/courtside/volley/utils"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded:", err)
	}

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatal("config:", err)
	}

	engine := troupe.NewEngine()
	broadcaster := game.StartBroadcaster(engine)

	var sink server.ResultSink
	if cfg.StoreDSN != "" {
		st, err := store.Open(context.Background(), cfg.StoreDSN)
		if err != nil {
			log.Fatal("store:", err)
		}
		defer st.Close()
		sink = st
	}

	srv := server.New(cfg, engine, broadcaster, sink)

	events := make(chan game.Event, 256)
	engine.Send(broadcaster, game.Subscribe{Ch: events}, nil)
	go srv.RunEventPump(context.Background(), events)

	log.Println("listening on", cfg.Addr)
	log.Fatal(srv.ListenAndServe())
}
