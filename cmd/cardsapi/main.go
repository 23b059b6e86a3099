package main

import (
	"fmt"
	"os"

	cards "github.com/Omersr/CardsAPI"
)

func main() {
	cfg, err := cards.LoadConfig()
	if err != nil {
		panic(err)
	}

	db := cards.NewDB(cfg.DatabaseURL)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--schema":
			if err := db.ApplySchema(); err != nil {
				panic(err)
			}
			return

		case "--seed":
			impl := cards.NewImpl(db, cfg)
			if err := impl.SeedEffectiveness(); err != nil {
				panic(err)
			}
			return
		}
	}

	impl := cards.NewImpl(db, cfg)
	api := cards.NewAPI(impl, cfg)

	port := cfg.Port
	if port == "" {
		port = "localhost:8080"
	} else {
		port = ":" + port
	}

	fmt.Println("listening on", port)
	if err := api.Serve(port); err != nil {
		panic(err)
	}
}
