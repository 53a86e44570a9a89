package actions

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/urfave/cli/v2"
)

func TestNewSessionConfig(t *testing.T) {
	ctx := context.Background()
	cfg := SessionConfig{}

	app := &cli.App{
		Name:  "test",
		Usage: "test",
		Commands: []*cli.Command{
			{
				Name:  "test",
				Usage: "test",
				Flags: SessionFlags(ctx),
				Action: func(c *cli.Context) error {
					var err error
					cfg, err = NewSessionConfig(ctx, c)
					return err
				},
			},
		},
	}

	credentials := []string{"--repository=repo1", "--username=dmadmin", "--password=secret"}

	cases := []struct {
		args                []string
		expectedConfig      SessionConfig
		expectedErrContains string
	}{
		{
			args: append([]string{"fake-binary", "test", "--endpoint=https://repo.example.com/rest"}, credentials...),
			expectedConfig: SessionConfig{
				outputType: tableOutputType,
				params: structs.ConnectParams{
					Endpoint: "https://repo.example.com/rest", Repository: "repo1", Username: "dmadmin", Password: "secret",
				},
			},
		},
		{
			args: append([]string{"fake-binary", "test", "--docbroker=broker", "--port=1490", "--output=json"}, credentials...),
			expectedConfig: SessionConfig{
				outputType: jsonOutputType,
				params: structs.ConnectParams{
					Docbroker: "broker", Port: 1490, Repository: "repo1", Username: "dmadmin", Password: "secret",
				},
			},
		},
		{
			args: append([]string{"fake-binary", "test", "--docbroker=broker"}, credentials...),
			expectedConfig: SessionConfig{
				outputType: tableOutputType,
				params: structs.ConnectParams{
					Docbroker: "broker", Port: 1489, Repository: "repo1", Username: "dmadmin", Password: "secret",
				},
			},
		},
		{
			args:                append([]string{"fake-binary", "test", "--docbroker=broker", "--output=FAKE"}, credentials...),
			expectedErrContains: "supported outputs are TABLE and JSON, got: FAKE",
		},
		{
			args:                append([]string{"fake-binary", "test"}, credentials...),
			expectedErrContains: structs.ErrInvalidConnectParams.Error(),
		},
		{
			args:                append([]string{"fake-binary", "test", "--endpoint=http://x", "--docbroker=broker"}, credentials...),
			expectedErrContains: structs.ErrInvalidConnectParams.Error(),
		},
		{
			args:                []string{"fake-binary", "test", "--endpoint=http://x"},
			expectedErrContains: "Required flags",
		},
	}

	for _, c := range cases {
		var outBuffer, errBuffer bytes.Buffer
		app.Writer = &outBuffer
		app.ErrWriter = &errBuffer

		err := app.Run(c.args)
		if err != nil && c.expectedErrContains == "" {
			t.Errorf("Expected err to be nil: %q", err)
		}

		if err == nil && c.expectedErrContains != "" {
			t.Errorf("Expected err to contain '%s' but was nil", c.expectedErrContains)
		}

		if err != nil && c.expectedErrContains != "" {
			if !strings.Contains(err.Error(), c.expectedErrContains) {
				t.Errorf("Expected err to contain '%s' but was: %q", c.expectedErrContains, err)
			}
		}

		if c.expectedErrContains == "" && cfg != c.expectedConfig {
			t.Errorf("Expected cfg to be %+v but was: %+v", c.expectedConfig, cfg)
		}

		cfg = SessionConfig{}
	}
}

func TestNewNamedConfig(t *testing.T) {
	ctx := context.Background()
	cfg := NamedConfig{}

	app := &cli.App{
		Name: "test",
		Commands: []*cli.Command{
			{
				Name:  "user",
				Flags: SessionFlags(ctx),
				Action: func(c *cli.Context) error {
					var err error
					cfg, err = NewNamedConfig(ctx, c, "user name")
					return err
				},
			},
		},
	}

	base := []string{"fake-binary", "user", "--endpoint=http://x", "--repository=repo1", "--username=dmadmin", "--password=secret"}

	if err := app.Run(append(base, "Alice")); err != nil {
		t.Fatalf("Expected err to be nil: %q", err)
	}
	if cfg.name != "Alice" {
		t.Errorf("Expected name to be 'Alice' but was: %s", cfg.name)
	}

	err := app.Run(base)
	if err == nil || !strings.Contains(err.Error(), "user name is required") {
		t.Errorf("Expected missing name error but was: %v", err)
	}
}

func TestNewListConfig(t *testing.T) {
	ctx := context.Background()
	cfg := ListConfig{}

	app := &cli.App{
		Name: "test",
		Commands: []*cli.Command{
			{
				Name:  "users",
				Flags: ListFlags(ctx),
				Action: func(c *cli.Context) error {
					var err error
					cfg, err = NewListConfig(ctx, c)
					return err
				},
			},
		},
	}

	err := app.Run([]string{
		"fake-binary", "users", "--docbroker=broker", "--repository=repo1",
		"--username=dmadmin", "--password=secret", "--search=ALI",
	})
	if err != nil {
		t.Fatalf("Expected err to be nil: %q", err)
	}
	if cfg.search != "ALI" {
		t.Errorf("Expected search to be 'ALI' but was: %s", cfg.search)
	}
}
