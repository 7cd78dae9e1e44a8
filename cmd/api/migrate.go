package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/tienda-inventario-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-inventario-api/pkg/config"
	"github.com/jhoicas/tienda-inventario-api/pkg/logger"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "administra el esquema de PostgreSQL",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "aplica todas las migraciones pendientes",
				Action: func(c *cli.Context) error {
					cfg, log, err := loadForMigrate()
					if err != nil {
						return err
					}
					return migrateUp(cfg.DB.ConnectionString(), log)
				},
			},
			{
				Name:  "down",
				Usage: "revierte migraciones",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "cantidad de migraciones a revertir (0 = todas)"},
				},
				Action: func(c *cli.Context) error {
					cfg, log, err := loadForMigrate()
					if err != nil {
						return err
					}
					return withMigrator(cfg.DB.ConnectionString(), log, func(m *postgres.Migrator) error {
						return m.Down(c.Int("steps"))
					})
				},
			},
			{
				Name:  "version",
				Usage: "muestra la versión actual del esquema",
				Action: func(c *cli.Context) error {
					cfg, log, err := loadForMigrate()
					if err != nil {
						return err
					}
					return withMigrator(cfg.DB.ConnectionString(), log, func(m *postgres.Migrator) error {
						v, dirty, err := m.Version()
						if err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "versión %d (dirty=%t)\n", v, dirty)
						return nil
					})
				},
			},
		},
	}
}

func loadForMigrate() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Component("migraciones")
	if cfg.DB.Driver != config.DriverPostgres {
		return nil, log, fmt.Errorf("migrate requiere DB_DRIVER=%s (actual: %s)", config.DriverPostgres, cfg.DB.Driver)
	}
	return cfg, log, nil
}

func migrateUp(databaseURL string, log zerolog.Logger) error {
	return withMigrator(databaseURL, log, func(m *postgres.Migrator) error {
		return m.Up()
	})
}

func withMigrator(databaseURL string, log zerolog.Logger, fn func(m *postgres.Migrator) error) error {
	m, err := postgres.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migrador")
		}
	}()
	if err := fn(m); err != nil {
		return fmt.Errorf("migraciones: %w", err)
	}
	if v, dirty, err := m.Version(); err == nil {
		log.Info().Uint("version", v).Bool("dirty", dirty).Msg("esquema actualizado")
	}
	return nil
}
