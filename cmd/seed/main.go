package main

import (
	"log"

	"github.com/HobbyShelf/HS-Backend/internal/auth"
	"github.com/HobbyShelf/HS-Backend/internal/config"
	"github.com/HobbyShelf/HS-Backend/internal/db"
	"github.com/HobbyShelf/HS-Backend/internal/hobbies"
	"github.com/HobbyShelf/HS-Backend/internal/seeds"
	"github.com/HobbyShelf/HS-Backend/internal/users"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")
	cfg := config.Load()

	gdb, err := db.Connect(cfg.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := auth.Init(gdb); err != nil {
		log.Fatal("Failed to migrate sessions: ", err)
	}
	if err := users.Init(gdb); err != nil {
		log.Fatal("Failed to migrate users: ", err)
	}
	if err := hobbies.Init(gdb); err != nil {
		log.Fatal("Failed to migrate hobbies: ", err)
	}

	if err := seeds.SeedAll(gdb); err != nil {
		log.Fatal("Failed to seed: ", err)
	}

	log.Println("Seed complete")
}
