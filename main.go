package main

import (
	"flag"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gantavyamalviya/pingpong/auth"
	"github.com/gantavyamalviya/pingpong/crud"
	"github.com/gantavyamalviya/pingpong/http"
)

// main is the app's entry point.
func main() {
	// Check if the flag "-prod" has been provided. It means that we're running
	// in production, where a config.yaml is required before the app starts.
	productionBool := flag.Bool("prod", false, "Provide this flag in production to ensure that a config.yaml file is provided before the application starts.")
	flag.Parse()

	config, err := LoadConfig(*productionBool)
	must(err)

	// Install the global logger.
	logger := newLogger(config.Log.Level)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Open a database connection and execute migrations.
	db := NewDB(config.Database.ConnectionInfo())
	err = Open(db, config.IsProd())
	must(err)
	defer Close(db)
	err = AutoMigrate(db)
	must(err)

	// Start the crud services.
	services, err := crud.NewServices(
		db.Gorm,
		crud.WithUser(config.Pepper),
		crud.WithBlog(),
		crud.WithComment(),
		crud.WithLike(),
		crud.WithFollow(),
	)
	must(err)

	// Set up token issuing and the webserver.
	jwtManager := auth.NewJWTManager(config.Auth.JWTSecret, config.Auth.Issuer, config.Auth.TokenTTL)
	server := http.NewServer(services, jwtManager)

	logger.Info("starting server", zap.Int("port", config.Port), zap.String("env", config.Env))
	must(server.Run(config.Port))
}

// newLogger builds the production zap logger at the configured level.
func newLogger(logLevel string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	cfg.Level.SetLevel(level)
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

// must is a little helper for shortening the panic instruction.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
