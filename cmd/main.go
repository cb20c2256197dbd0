package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/alecthomas/kong"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Путь к файлу конфигурации." type:"path" default:"config.toml" env:"SLOTBOOKING_CONFIG"`

	Serve   ServeCmd   `cmd:"" help:"Запустить HTTP сервер записи." default:"1"`
	Migrate MigrateCmd `cmd:"" help:"Применить миграции БД и выйти."`
}

// appContext общие параметры команд
type appContext struct {
	ConfigPath string
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("slotbooking"),
		kong.Description("Запись к одному мастеру: заявки, подтверждение, напоминания"),
		kong.UsageOnError(),
		kong.Vars{"version": "v1.0.0"},
	)

	if err := ctx.Run(&appContext{ConfigPath: CLI.Config}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
