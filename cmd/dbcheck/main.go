package main

import (
	"fmt"
	"log"

	"github.com/HobbyShelf/HS-Backend/internal/config"
	"github.com/HobbyShelf/HS-Backend/internal/db"
	"github.com/joho/godotenv"
)

// Quick sanity check against the configured database. Prints row counts for
// each table so a deploy can be verified without opening psql.
func main() {
	godotenv.Load(".env.local")

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DSN())
	if err != nil {
		log.Fatalf("DB connection error: %v", err)
	}

	for _, table := range []string{"app.users", "app.hobbies", "app.sessions"} {
		var count int64
		if err := gdb.Table(table).Count(&count).Error; err != nil {
			log.Fatalf("count %s: %v", table, err)
		}
		fmt.Printf("%-14s %d rows\n", table, count)
	}
}
