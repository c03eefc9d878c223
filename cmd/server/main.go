package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"gift-swap/internal/bus"
	"gift-swap/internal/config"
	"gift-swap/internal/db"
	"gift-swap/internal/rules"
	"gift-swap/internal/server"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open()
	if err != nil {
		log.Fatal(err)
	}
	err = db.Pool(conn,
		cfg.DBMaxOpenConns,
		cfg.DBMaxIdleConns,
		time.Duration(cfg.DBConnMaxLifetimeSeconds)*time.Second,
		time.Duration(cfg.DBConnMaxIdleTimeSeconds)*time.Second,
	)
	if err != nil {
		log.Fatal(err)
	}

	store := db.NewStore(conn)
	playBus := bus.New()
	engine, err := rules.NewEngine(store, playBus, rules.Config{
		StealLimit:  cfg.StealLimit,
		FirstPlayer: rules.FirstPlayerPolicy(cfg.FirstPlayerPolicy),
	})
	if err != nil {
		log.Fatal(err)
	}

	srv := server.New(store, engine, playBus)
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("gift-swap server listening on %s steal_limit=%d first_player=%s",
		addr, cfg.StealLimit, cfg.FirstPlayerPolicy)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
