package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hrmslite/hrms/internal/migrate"
	"github.com/hrmslite/hrms/internal/store/pg"
)

func main() {
	log.SetFlags(0)
	loadDotEnv(log.Printf)

	var (
		dsn     = flag.String("dsn", os.Getenv("DATABASE_URL"), "PostgreSQL DSN")
		timeout = flag.Duration("timeout", 30*time.Second, "Overall timeout")
	)
	flag.Parse()

	if *dsn == "" {
		log.Fatal("missing DSN: provide via -dsn or DATABASE_URL")
	}
	if len(flag.Args()) == 0 {
		log.Fatal("usage: migrate [up|down|seed|status]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, err := pg.Open(ctx, *dsn, pg.PoolOptions{MaxOpen: 2, MaxIdle: 1})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer store.Close()

	mgr := migrate.NewEmbedded(store.DB().DB)

	var lines []string
	switch flag.Arg(0) {
	case "up":
		lines, err = mgr.Up(ctx)
	case "down":
		var name string
		name, err = mgr.Down(ctx)
		if name != "" {
			lines = []string{name}
		}
	case "seed":
		lines, err = mgr.Seed(ctx)
	case "status":
		lines, err = mgr.Status(ctx)
		if err == nil {
			var pending []string
			pending, err = mgr.Pending(ctx)
			for _, name := range pending {
				lines = append(lines, name+" (pending)")
			}
		}
	default:
		log.Fatalf("unknown command %q", flag.Arg(0))
	}
	if err != nil {
		log.Fatalf("migrate %s: %v", flag.Arg(0), err)
	}
	for _, line := range lines {
		fmt.Println(line)
	}
}

// loadDotEnv loads files (default .env) and reports a missing or unreadable file through logf.
func loadDotEnv(logf func(format string, args ...any), files ...string) {
	err := godotenv.Load(files...)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		logf("no .env file, using environment")
	default:
		logf("load .env: %v", err)
	}
}
