package main

import (
	"context"

	"github.com/DenisKhanov/GameSearchBOT/internal/app/tbot"
	"github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"
)

type args struct {
	EnvFile  string `arg:"--env-file,env:ENV_FILE" default:"bot.env" help:"path to the env file"`
	LogLevel string `arg:"--log-level" help:"overrides LOG_LEVEL (debug, info, warn, error)"`
}

func (args) Description() string {
	return "Telegram bot that recommends games by keywords and genre."
}

func main() {
	var a args
	arg.MustParse(&a)

	ctx := context.Background()

	app, err := tbot.NewApp(ctx, a.EnvFile, a.LogLevel)
	if err != nil {
		logrus.Fatalf("failed to init app: %s", err.Error())
	}

	if err = app.Run(ctx); err != nil {
		logrus.Fatalf("failed to run app: %s", err.Error())
	}
}
