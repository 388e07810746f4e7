package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/Arunachalam-140897/DevEngine/pkg/manifest"
	"github.com/Arunachalam-140897/DevEngine/pkg/serializer"
	"github.com/Arunachalam-140897/DevEngine/pkg/topology"
)

// ValidationReport is what validate prints.
type ValidationReport struct {
	Valid      bool     `json:"valid" yaml:"valid"`
	AppName    string   `json:"appName" yaml:"appName"`
	Tiers      int      `json:"tiers" yaml:"tiers"`
	Files      []string `json:"files,omitempty" yaml:"files,omitempty"`
	Violations []string `json:"violations,omitempty" yaml:"violations,omitempty"`
	Warnings   []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// errValidationFailed is returned by validate --fail-on-error.
var errValidationFailed = stderrors.New("topology validation failed")

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate a topology file without writing manifests",
		Description: `Checks a topology and reports violations, warnings and the files that
would be generated.

Use --fail-on-error in CI pipelines to exit non-zero when the topology is invalid.

# Examples

  devengine validate --input topology.yaml
  devengine validate -i topology.yaml --format json --fail-on-error`,
		Flags: []cli.Flag{
			inputFlag(),
			formatFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   serializer.StdoutURI,
				Usage:   `Report file path, or "-" for stdout`,
			},
			&cli.BoolFlag{
				Name:  "strict-volumes",
				Usage: "Treat incomplete persistent volumes as violations",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with a non-zero status when the topology is invalid",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			req, err := topology.FromFile(cmd.String("input"))
			if err != nil {
				return err
			}

			report, err := buildReport(*req, cmd.Bool("strict-volumes"))
			if err != nil {
				return err
			}

			var ser serializer.Serializer
			if out := cmd.String("output"); out == serializer.StdoutURI {
				ser = serializer.NewWriter(outFormat, stdout(cmd))
			} else {
				ser, err = serializer.NewFileWriterOrStdout(outFormat, out)
				if err != nil {
					return err
				}
			}
			defer func() {
				if c, ok := ser.(serializer.Closer); ok {
					if err := c.Close(); err != nil {
						slog.Warn("failed to close serializer", "error", err)
					}
				}
			}()

			if err := ser.Serialize(ctx, report); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			if !report.Valid && cmd.Bool("fail-on-error") {
				return fmt.Errorf("%w: %d violation(s)", errValidationFailed, len(report.Violations))
			}
			return nil
		},
	}
}

// buildReport compiles req and turns the outcome into a report. Only
// unexpected failures are returned as errors.
func buildReport(req topology.TopologyRequest, strict bool) (*ValidationReport, error) {
	report := &ValidationReport{AppName: req.AppName, Tiers: len(req.Tiers)}

	bundle, err := manifest.New(manifest.WithStrictVolumes(strict)).Compile(req)
	if err != nil {
		var ve *topology.ValidationError
		if stderrors.As(err, &ve) {
			report.Violations = ve.Violations
			return report, nil
		}
		return nil, err
	}

	report.Valid = true
	report.Files = bundle.Names()
	report.Warnings = bundle.Warnings
	return report, nil
}
