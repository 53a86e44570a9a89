package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redhat-data-and-ai/repobridge/cmd/repobridgectl/actions"
	"github.com/redhat-data-and-ai/repobridge/pkg/config"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "repobridgectl",
		Usage: "Inspect a document repository through the local protocol bridges",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Usage:   "Config environment, read from appconfig/<env>.yaml",
				EnvVars: []string{"APP_ENV"},
				Value:   "default",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "health",
				Usage: "Probe the query and REST bridges",
				Flags: actions.OutputFlags(ctx),
				Action: func(c *cli.Context) error {
					cfg, err := actions.NewHealthConfig(ctx, c)
					if err != nil {
						return err
					}
					return printOutput(c, func(appCfg *config.AppConfig) (string, error) {
						return actions.Health(ctx, appCfg, cfg)
					})
				},
			},
			{
				Name:  "users",
				Usage: "List repository users",
				Flags: actions.ListFlags(ctx),
				Action: func(c *cli.Context) error {
					cfg, err := actions.NewListConfig(ctx, c)
					if err != nil {
						return err
					}
					return printOutput(c, func(appCfg *config.AppConfig) (string, error) {
						return actions.Users(ctx, appCfg, cfg)
					})
				},
			},
			{
				Name:      "user",
				Usage:     "Show a user with its attributes and groups",
				ArgsUsage: "<name>",
				Flags:     actions.SessionFlags(ctx),
				Action: func(c *cli.Context) error {
					cfg, err := actions.NewNamedConfig(ctx, c, "user name")
					if err != nil {
						return err
					}
					return printOutput(c, func(appCfg *config.AppConfig) (string, error) {
						return actions.User(ctx, appCfg, cfg)
					})
				},
			},
			{
				Name:  "groups",
				Usage: "List repository groups",
				Flags: actions.ListFlags(ctx),
				Action: func(c *cli.Context) error {
					cfg, err := actions.NewListConfig(ctx, c)
					if err != nil {
						return err
					}
					return printOutput(c, func(appCfg *config.AppConfig) (string, error) {
						return actions.Groups(ctx, appCfg, cfg)
					})
				},
			},
			{
				Name:      "group",
				Usage:     "Show a group with its attributes, members and parents",
				ArgsUsage: "<name>",
				Flags:     actions.SessionFlags(ctx),
				Action: func(c *cli.Context) error {
					cfg, err := actions.NewNamedConfig(ctx, c, "group name")
					if err != nil {
						return err
					}
					return printOutput(c, func(appCfg *config.AppConfig) (string, error) {
						return actions.Group(ctx, appCfg, cfg)
					})
				},
			},
			{
				Name:      "query",
				Aliases:   []string{"q"},
				Usage:     "Run a query, only supported by query-protocol sessions",
				ArgsUsage: "<query>",
				Flags:     actions.SessionFlags(ctx),
				Action: func(c *cli.Context) error {
					cfg, err := actions.NewNamedConfig(ctx, c, "query")
					if err != nil {
						return err
					}
					return printOutput(c, func(appCfg *config.AppConfig) (string, error) {
						return actions.Query(ctx, appCfg, cfg)
					})
				},
			},
			{
				Name:  "cabinets",
				Usage: "List cabinets",
				Flags: actions.SessionFlags(ctx),
				Action: func(c *cli.Context) error {
					cfg, err := actions.NewSessionConfig(ctx, c)
					if err != nil {
						return err
					}
					return printOutput(c, func(appCfg *config.AppConfig) (string, error) {
						return actions.Cabinets(ctx, appCfg, cfg)
					})
				},
			},
			{
				Name:      "ls",
				Usage:     "List the contents of a folder",
				ArgsUsage: "<path>",
				Flags:     actions.SessionFlags(ctx),
				Action: func(c *cli.Context) error {
					cfg, err := actions.NewNamedConfig(ctx, c, "folder path")
					if err != nil {
						return err
					}
					return printOutput(c, func(appCfg *config.AppConfig) (string, error) {
						return actions.List(ctx, appCfg, cfg)
					})
				},
			},
			{
				Name:  "watch",
				Usage: "Keep a session open and refresh the user and group caches periodically",
				Flags: actions.WatchFlags(ctx),
				Action: func(c *cli.Context) error {
					cfg, err := actions.NewWatchConfig(ctx, c)
					if err != nil {
						return err
					}
					appCfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					return actions.Watch(ctx, appCfg, cfg, os.Stdout)
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	appCfg, err := config.LoadConfig(c.String("env"))
	if err != nil {
		return nil, err
	}
	logger.Init(appCfg.Log.Level, appCfg.Log.Format)
	return appCfg, nil
}

func printOutput(c *cli.Context, fn func(*config.AppConfig) (string, error)) error {
	appCfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	output, err := fn(appCfg)
	if err != nil {
		return err
	}

	fmt.Print(output)
	return nil
}
