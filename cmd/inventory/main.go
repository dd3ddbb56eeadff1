package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/inventory-ledger/internal/adapter/handler"
	"github.com/rl1809/inventory-ledger/internal/adapter/storage"
	"github.com/rl1809/inventory-ledger/internal/core/service"
)

const (
	connectTimeout = 5 * time.Second
)

// demoCommands is the sample session run when no commands are given.
var demoCommands = []string{
	"load",
	"add apple 10",
	"add banana 2",
	"remove apple 3",
	"remove orange 1",
	"qty apple",
	"low",
	"save",
	"inventory",
	"log",
}

type config struct {
	file      string
	threshold int
	redisAddr string
	redisKey  string
	mysqlDSN  string
	session   string
	verbose   bool
	commands  []string
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("invalid arguments: %v", err)
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := []service.Option{service.WithLogger(logger)}
	if cfg.session != "" {
		id, err := uuid.Parse(cfg.session)
		if err != nil {
			log.Fatalf("invalid session id %q: %v", cfg.session, err)
		}
		opts = append(opts, service.WithSessionID(id))
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	// Initialize Redis
	var redisAdapter *storage.RedisAdapter
	if cfg.redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.redisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		defer rdb.Close()

		redisAdapter = storage.NewRedisAdapter(rdb, cfg.redisKey)
		opts = append(opts, service.WithMirror(redisAdapter))
		logger.Info("connected to redis", "addr", cfg.redisAddr, "key", cfg.redisKey)
	}

	// Initialize MySQL
	var mysqlAdapter *storage.MySQLAdapter
	if cfg.mysqlDSN != "" {
		db, err := sql.Open("mysql", cfg.mysqlDSN)
		if err != nil {
			log.Fatalf("failed to connect mysql: %v", err)
		}
		db.SetMaxOpenConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("failed to ping mysql: %v", err)
		}
		mysqlAdapter = storage.NewMySQLAdapter(db)
		if err := mysqlAdapter.EnsureSchema(ctx); err != nil {
			log.Fatalf("failed to prepare mysql schema: %v", err)
		}
		logger.Info("connected to mysql")
	}

	inventory := service.NewInventoryService(storage.NewFileAdapter(), opts...)
	cli := handler.NewCLIHandler(inventory)
	if redisAdapter != nil {
		cli.WithRepository("redis", redisAdapter)
	}
	if mysqlAdapter != nil {
		cli.WithRepository("mysql", mysqlAdapter).WithArchive(mysqlAdapter)
	}

	commands := cfg.commands
	if len(commands) == 0 {
		commands = defaultCommands(cfg)
	}

	runCtx := context.Background()
	for _, line := range commands {
		if err := cli.Execute(runCtx, line, os.Stdout); err != nil {
			log.Fatalf("%s: %v", line, err)
		}
	}
}

// defaultCommands binds the demo session to the configured file and threshold.
func defaultCommands(cfg config) []string {
	commands := make([]string, 0, len(demoCommands))
	for _, line := range demoCommands {
		switch line {
		case "load", "save":
			line = line + " " + cfg.file
		case "low":
			line = fmt.Sprintf("low %d", cfg.threshold)
		}
		commands = append(commands, line)
	}
	return commands
}

func parseFlags(args []string) (config, error) {
	set := flag.NewFlagSet("inventory", flag.ContinueOnError)

	var cfg config
	set.StringVar(&cfg.file, "file", service.DefaultPath, "Inventory JSON file used by the demo session.")
	set.IntVar(&cfg.threshold, "threshold", service.DefaultLowStockThreshold, "Low stock threshold used by the demo session.")
	set.StringVar(&cfg.redisAddr, "redis-addr", os.Getenv("REDIS_ADDR"), "Redis address; enables the stock mirror and the \"redis\" repository.")
	set.StringVar(&cfg.redisKey, "redis-key", storage.DefaultRedisKey, "Redis hash holding the mirrored stock.")
	set.StringVar(&cfg.mysqlDSN, "mysql-dsn", os.Getenv("MYSQL_DSN"), "MySQL DSN; enables the \"mysql\" repository and activity archive. Requires parseTime=true.")
	set.StringVar(&cfg.session, "session", "", "Session UUID used when archiving activity.")
	set.BoolVar(&cfg.verbose, "v", false, "Log diagnostics at info level.")

	if err := set.Parse(args); err != nil {
		return config{}, err
	}
	cfg.commands = set.Args()
	return cfg, nil
}
