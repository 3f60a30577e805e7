package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/emberforge/taverntale/server/internal/config"
	"github.com/emberforge/taverntale/server/internal/database"
	"github.com/emberforge/taverntale/server/internal/logger"
	"github.com/emberforge/taverntale/server/internal/server"
)

func main() {
	// Parse command-line flags
	port := flag.Int("port", 4443, "WebSocket server port")
	serverConfigFile := flag.String("config", "data/server.yaml", "Path to server config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	dbDriver := flag.String("db-driver", "sqlite", "Database driver (sqlite or postgres)")
	dbFile := flag.String("db", "data/taverntale.db", "Path to SQLite database file")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "taverntale", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "", "PostgreSQL password (or set TAVERNTALE_PG_PASSWORD)")
	pgDatabase := flag.String("pg-database", "taverntale", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	flag.Parse()

	// Initialize logger first (before any logging)
	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	logger.Info("Starting TavernTale map server")

	// Load server config (origins, connection limits, generator bounds)
	serverCfg, err := config.LoadConfig(*serverConfigFile)
	if err != nil {
		logger.Warning("Failed to load server config, using defaults", "path", *serverConfigFile, "error", err)
		serverCfg = config.DefaultConfig()
	}
	if len(serverCfg.WebSocket.AllowedOrigins) == 0 {
		logger.Info("WebSocket CORS policy", "mode", "same-origin")
	} else if len(serverCfg.WebSocket.AllowedOrigins) == 1 && serverCfg.WebSocket.AllowedOrigins[0] == "*" {
		logger.Warning("WebSocket CORS allows all origins (not recommended for production)")
	} else {
		logger.Info("WebSocket CORS policy", "allowed_origins", serverCfg.WebSocket.AllowedOrigins)
	}

	// Build database config from flags
	dbCfg, err := buildDatabaseConfig(*dbDriver, *dbFile, *pgHost, *pgPort, *pgUser, *pgPassword, *pgDatabase, *pgSSLMode)
	if err != nil {
		log.Fatalf("Invalid database configuration: %v", err)
	}

	db, err := database.Open(dbCfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	logger.Info("Dungeon database initialized", "driver", *dbDriver)

	// Create and start the server
	addr := fmt.Sprintf(":%d", *port)
	srv := server.NewServer(addr, serverCfg, db)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("WebSocket server error: %v", err)
		}
	}()

	logger.Info("TavernTale server running", "websocket_port", *port)
	logger.Info("Press Ctrl+C to shutdown")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server")
	srv.Shutdown()
	logger.Info("Server stopped")
}

func buildDatabaseConfig(driver, dbFile, host string, port int, user, password, name, sslMode string) (database.Config, error) {
	switch database.DialectType(driver) {
	case database.DialectSQLite:
		return database.DefaultConfig(dbFile), nil
	case database.DialectPostgres:
		if password == "" {
			password = os.Getenv("TAVERNTALE_PG_PASSWORD")
		}
		pg := database.DefaultPostgresConfig()
		pg.Host = host
		pg.Port = port
		pg.User = user
		pg.Password = password
		pg.Database = name
		pg.SSLMode = sslMode
		return database.Config{Driver: database.DialectPostgres, Postgres: pg}, nil
	default:
		return database.Config{}, fmt.Errorf("unknown database driver %q", driver)
	}
}
