package main

import (
	"context"
	"fmt"
	"go/format"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/delaneyj/maple/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	genericParamCountKey = "count"
	outKey               = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the DeriveN helpers for the reactive package",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  genericParamCountKey,
				Usage: "Number of Derive helpers to generate",
				Value: 4,
			},
			&cli.StringFlag{
				Name:  outKey,
				Usage: "File the helpers are written to",
				Value: "reactive/derive_gen.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	start := time.Now()

	count := int(cmd.Uint(genericParamCountKey))
	out := cmd.String(outKey)
	logger.Info("codegen started", "count", count, "out", out)

	contents, err := render(count)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(out, contents, 0o644); err != nil {
		return err
	}

	logger.Info("codegen finished", "bytes", len(contents), "duration", time.Since(start))
	return nil
}

func render(count int) ([]byte, error) {
	if count < 1 {
		return nil, fmt.Errorf("--%s must be at least 1", genericParamCountKey)
	}
	src := templates.DeriveGen(count)
	formatted, err := format.Source([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return formatted, nil
}
