package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/urfave/cli/v2"
)

type outputType string

var tableOutputType outputType = "TABLE"
var jsonOutputType outputType = "JSON"

func newOutputType(s string) (outputType, error) {
	switch strings.ToUpper(s) {
	case "TABLE":
		return tableOutputType, nil
	case "JSON":
		return jsonOutputType, nil
	default:
		return "", fmt.Errorf("supported outputs are TABLE and JSON, got: %s", s)
	}
}

// OutputFlags ...
func OutputFlags(ctx context.Context) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    "How to output the data (TABLE or JSON)",
			EnvVars:  []string{"OUTPUT"},
			Value:    "TABLE",
			Required: false,
		},
	}
}

// SessionFlags are shared by every command that opens a repository session
func SessionFlags(ctx context.Context) []cli.Flag {
	return append(OutputFlags(ctx),
		&cli.StringFlag{
			Name:     "endpoint",
			Usage:    "REST endpoint URL of the repository, selects the REST protocol",
			EnvVars:  []string{"REPOBRIDGE_ENDPOINT"},
			Value:    "",
			Required: false,
		},
		&cli.StringFlag{
			Name:     "docbroker",
			Usage:    "Docbroker host of the repository, selects the query protocol",
			EnvVars:  []string{"REPOBRIDGE_DOCBROKER"},
			Value:    "",
			Required: false,
		},
		&cli.IntFlag{
			Name:     "port",
			Usage:    "Docbroker port",
			EnvVars:  []string{"REPOBRIDGE_DOCBROKER_PORT"},
			Value:    1489,
			Required: false,
		},
		&cli.StringFlag{
			Name:     "repository",
			Aliases:  []string{"r"},
			Usage:    "Repository name",
			EnvVars:  []string{"REPOBRIDGE_REPOSITORY"},
			Required: true,
		},
		&cli.StringFlag{
			Name:     "username",
			Aliases:  []string{"u"},
			Usage:    "Repository user",
			EnvVars:  []string{"REPOBRIDGE_USERNAME"},
			Required: true,
		},
		&cli.StringFlag{
			Name:     "password",
			Usage:    "Repository password",
			EnvVars:  []string{"REPOBRIDGE_PASSWORD"},
			Required: true,
		},
	)
}

// SessionConfig carries the connect params and output format of a command
type SessionConfig struct {
	outputType
	params structs.ConnectParams
}

// NewSessionConfig ...
func NewSessionConfig(ctx context.Context, c *cli.Context) (SessionConfig, error) {
	output, err := newOutputType(c.String("output"))
	if err != nil {
		return SessionConfig{}, err
	}

	params := structs.ConnectParams{
		Endpoint:   c.String("endpoint"),
		Docbroker:  c.String("docbroker"),
		Repository: c.String("repository"),
		Username:   c.String("username"),
		Password:   c.String("password"),
	}
	if params.Docbroker != "" {
		params.Port = c.Int("port")
	}
	if _, err := params.Protocol(); err != nil {
		return SessionConfig{}, err
	}

	return SessionConfig{
		outputType: output,
		params:     params,
	}, nil
}

// HealthConfig ...
type HealthConfig struct {
	outputType
}

// NewHealthConfig ...
func NewHealthConfig(ctx context.Context, c *cli.Context) (HealthConfig, error) {
	output, err := newOutputType(c.String("output"))
	if err != nil {
		return HealthConfig{}, err
	}
	return HealthConfig{outputType: output}, nil
}

// ListConfig is used by the commands listing users or groups
type ListConfig struct {
	SessionConfig
	search string
}

// ListFlags ...
func ListFlags(ctx context.Context) []cli.Flag {
	return append(SessionFlags(ctx),
		&cli.StringFlag{
			Name:     "search",
			Aliases:  []string{"s"},
			Usage:    "Only list names containing this text, ignoring case",
			Required: false,
		},
	)
}

// NewListConfig ...
func NewListConfig(ctx context.Context, c *cli.Context) (ListConfig, error) {
	session, err := NewSessionConfig(ctx, c)
	if err != nil {
		return ListConfig{}, err
	}
	return ListConfig{SessionConfig: session, search: c.String("search")}, nil
}

// NamedConfig is used by commands taking one positional argument
type NamedConfig struct {
	SessionConfig
	name string
}

// NewNamedConfig reads the first argument as the name, what describes it in
// the error
func NewNamedConfig(ctx context.Context, c *cli.Context, what string) (NamedConfig, error) {
	session, err := NewSessionConfig(ctx, c)
	if err != nil {
		return NamedConfig{}, err
	}

	name := strings.TrimSpace(c.Args().First())
	if name == "" {
		return NamedConfig{}, fmt.Errorf("%s is required", what)
	}
	return NamedConfig{SessionConfig: session, name: name}, nil
}

// WatchConfig ...
type WatchConfig struct {
	SessionConfig
	interval time.Duration
}

// WatchFlags ...
func WatchFlags(ctx context.Context) []cli.Flag {
	return append(SessionFlags(ctx),
		&cli.DurationFlag{
			Name:     "interval",
			Usage:    "How often the caches are refreshed, defaults to jobs.cacheRefreshInterval",
			Required: false,
		},
	)
}

// NewWatchConfig ...
func NewWatchConfig(ctx context.Context, c *cli.Context) (WatchConfig, error) {
	session, err := NewSessionConfig(ctx, c)
	if err != nil {
		return WatchConfig{}, err
	}
	return WatchConfig{SessionConfig: session, interval: c.Duration("interval")}, nil
}
