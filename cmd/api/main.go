package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	_ "github.com/jhoicas/tienda-inventario-api/docs"
)

// @title        Tienda Inventario API
// @version      1.0
// @description  Libro de movimientos de inventario y motor de consistencia de stock de la tienda.
// @BasePath     /
func main() {
	app := &cli.App{
		Name:   "tienda-inventario-api",
		Usage:  "API de inventario: catálogo, entradas y salidas, conciliación y reportes",
		Action: runServe,
		Flags:  serveFlags(),
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
