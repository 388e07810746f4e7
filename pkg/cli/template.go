package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/Arunachalam-140897/DevEngine/pkg/serializer"
	"github.com/Arunachalam-140897/DevEngine/pkg/template"
)

var errNoTemplateStore = stderrors.New("template commands require --redis-addr or REDIS_ADDR")

func templateCmd() *cli.Command {
	return &cli.Command{
		Name:    "template",
		Aliases: []string{"tpl"},
		Usage:   "Manage saved manifest templates in Redis",
		Flags:   []cli.Flag{redisFlag()},
		Commands: []*cli.Command{
			{
				Name:      "save",
				Usage:     "Save a manifest file as a named template",
				ArgsUsage: "NAME",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Required: true,
						Usage:    `Manifest file to store, or "-" for stdin`,
					},
				},
				Action: withStore(func(ctx context.Context, cmd *cli.Command, store template.Store) error {
					name, err := templateName(cmd)
					if err != nil {
						return err
					}
					content, err := readContent(cmd.String("file"))
					if err != nil {
						return err
					}
					t, err := store.Save(ctx, name, content)
					if err != nil {
						return err
					}
					slog.Info("template saved", "name", t.Name, "bytes", len(t.Content))
					return nil
				}),
			},
			{
				Name:      "get",
				Usage:     "Print the content of a template",
				ArgsUsage: "NAME",
				Action: withStore(func(ctx context.Context, cmd *cli.Command, store template.Store) error {
					name, err := templateName(cmd)
					if err != nil {
						return err
					}
					t, err := store.Get(ctx, name)
					if err != nil {
						return err
					}
					_, err = io.WriteString(stdout(cmd), t.Content)
					return err
				}),
			},
			{
				Name:  "list",
				Usage: "List saved templates",
				Flags: []cli.Flag{formatFlag()},
				Action: withStore(func(ctx context.Context, cmd *cli.Command, store template.Store) error {
					outFormat, err := parseOutputFormat(cmd)
					if err != nil {
						return err
					}
					list, err := store.List(ctx)
					if err != nil {
						return err
					}
					summaries := make([]templateSummary, 0, len(list))
					for _, t := range list {
						summaries = append(summaries, templateSummary{
							Name:      t.Name,
							Bytes:     len(t.Content),
							CreatedAt: t.CreatedAt.Format(time.RFC3339),
							UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
						})
					}
					return serializer.NewWriter(outFormat, stdout(cmd)).Serialize(ctx, summaries)
				}),
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a template",
				ArgsUsage: "NAME",
				Action: withStore(func(ctx context.Context, cmd *cli.Command, store template.Store) error {
					name, err := templateName(cmd)
					if err != nil {
						return err
					}
					if err := store.Delete(ctx, name); err != nil {
						return err
					}
					slog.Info("template deleted", "name", name)
					return nil
				}),
			},
		},
	}
}

type templateSummary struct {
	Name      string `json:"name" yaml:"name"`
	Bytes     int    `json:"bytes" yaml:"bytes"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
	UpdatedAt string `json:"updated_at" yaml:"updated_at"`
}

// withStore opens the Redis template store for the duration of fn.
func withStore(fn func(context.Context, *cli.Command, template.Store) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		addr := strings.TrimSpace(cmd.String("redis-addr"))
		if addr == "" {
			return errNoTemplateStore
		}

		store, err := template.NewStore(ctx, addr)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				slog.Warn("failed to close template store", "error", err)
			}
		}()

		return fn(ctx, cmd, store)
	}
}

func templateName(cmd *cli.Command) (string, error) {
	name := cmd.Args().First()
	if err := template.ValidateName(name); err != nil {
		return "", err
	}
	return name, nil
}

func readContent(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == serializer.StdoutURI {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("template content from %q is empty", path)
	}
	return string(data), nil
}
