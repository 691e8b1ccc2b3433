// Command specpair scans a directory of paired two-camera captures, checks
// that both cameras were captured in the same order and resolves labels to
// one image per camera.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/hashicorp/go-hclog"
	"github.com/kdimtricp/specpair/internal/config"
	"github.com/kdimtricp/specpair/internal/database"
	"github.com/kdimtricp/specpair/internal/envi"
	"github.com/kdimtricp/specpair/internal/logging"
	"github.com/kdimtricp/specpair/internal/models"
	"github.com/kdimtricp/specpair/internal/pairing"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

type options struct {
	cfg      config.Config
	dbPath   string
	logLevel string
	scanID   string
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{cfg: config.FromEnv()}

	rootCmd := &cobra.Command{
		Use:           "specpair",
		Short:         "Pair and label two-camera hyperspectral captures",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfg.HeaderFileSuffix, "header-suffix", opts.cfg.HeaderFileSuffix, "First suffix of header files")
	flags.StringVar(&opts.cfg.ImageFileSuffix, "image-suffix", opts.cfg.ImageFileSuffix, "First suffix of image files")
	flags.StringVar(&opts.cfg.Camera1ID, "camera1", opts.cfg.Camera1ID, "Camera 1 id")
	flags.StringVar(&opts.cfg.Camera2ID, "camera2", opts.cfg.Camera2ID, "Camera 2 id")
	flags.StringVar(&opts.cfg.LabelsPartDelimiter, "part-delimiter", opts.cfg.LabelsPartDelimiter, "Separates the label segment from the rest of the name")
	flags.StringVar(&opts.cfg.LabelsBetweenDelimiter, "between-delimiter", opts.cfg.LabelsBetweenDelimiter, "Separates labels inside the label segment")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite catalog to store scans in")
	flags.StringVar(&opts.logLevel, "log-level", logging.GetLogLevel(), "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newScanCmd(opts), newFindCmd(opts), newMigrateCmd(opts))
	return rootCmd
}

func newScanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [dir]",
		Short: "Scan a capture directory and list both camera sequences",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairer, logger, err := opts.pairer()
			if err != nil {
				return err
			}

			result, err := pairer.Scan(dirArg(args))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printScan(out, result)

			if opts.dbPath == "" {
				return nil
			}
			scan := models.ScanFromResult(result, opts.cfg.Camera1ID, opts.cfg.Camera2ID)
			if err := storeScan(cmd.Context(), opts.dbPath, scan, logger); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nstored scan %s\n", scan.ID)
			return nil
		},
	}
}

func newFindCmd(opts *options) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "find <label>",
		Short: "Resolve a label to one image per camera",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairer, _, err := opts.pairer()
			if err != nil {
				return err
			}
			label := args[0]

			var match *pairing.Match
			if opts.scanID != "" {
				match, err = findStored(cmd.Context(), opts, pairer, label)
			} else {
				var result *pairing.ScanResult
				result, err = pairer.Scan(dir)
				if err == nil {
					match, err = pairer.Find(result, label)
				}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "label:   %s\n", label)
			fmt.Fprintf(out, "camera1: [%d] %s\n", match.Index1, match.Camera1.Filepath())
			fmt.Fprintf(out, "camera2: [%d] %s\n", match.Index2, match.Camera2.Filepath())
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Capture directory (default: "+config.EnvImagesDir+" or the built-in default)")
	cmd.Flags().StringVar(&opts.scanID, "scan-id", "", "Look up in a stored scan instead of rescanning (requires --db)")
	return cmd
}

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations to the --db catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.dbPath == "" {
				return fmt.Errorf("migrate requires --db")
			}
			db, err := database.NewDB(database.Config{SQLitePath: opts.dbPath})
			if err != nil {
				return err
			}
			defer db.Close()

			logger := logging.NewLogger("specpair", opts.logLevel, os.Stderr)
			migrator := database.NewMigrator(db.Conn(), nil, logger.Named("migrate"))
			if err := migrator.Run(); err != nil {
				return err
			}

			applied, err := migrator.GetAppliedMigrations()
			if err != nil {
				return err
			}
			migrations, err := migrator.LoadMigrations()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range migrations {
				if applied[m.Version] {
					fmt.Fprintf(out, "applied %s\n", m.Name)
				}
			}
			return nil
		},
	}
}

func (o *options) pairer() (*pairing.Pairer, hclog.Logger, error) {
	if err := o.cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger := logging.NewLogger("specpair", o.logLevel, os.Stderr)
	return pairing.NewPairer(o.cfg, envi.NewBuilder(), logger), logger, nil
}

func findStored(ctx context.Context, opts *options, pairer *pairing.Pairer, label string) (*pairing.Match, error) {
	if opts.dbPath == "" {
		return nil, fmt.Errorf("--scan-id requires --db")
	}
	db, err := database.NewDB(database.Config{SQLitePath: opts.dbPath})
	if err != nil {
		return nil, err
	}
	defer db.Close()

	scan, err := database.NewScanRepository(db).GetScan(ctx, opts.scanID)
	if err != nil {
		return nil, err
	}
	return pairer.FindByLabel(label, scan.Images(1), scan.Images(2), scan.Labels(1), scan.Labels(2))
}

func storeScan(ctx context.Context, dbPath string, scan *models.Scan, logger hclog.Logger) error {
	db, err := database.NewDB(database.Config{SQLitePath: dbPath})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.RunMigrations(logger.Named("migrate")); err != nil {
		return err
	}
	return database.NewScanRepository(db).InsertScan(ctx, scan)
}

func printScan(out io.Writer, result *pairing.ScanResult) {
	fmt.Fprintf(out, "directory: %s\n\n", result.Directory)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCAMERA1\tCAMERA2\tLABELS")
	n := max(len(result.Camera1), len(result.Camera2))
	for i := 0; i < n; i++ {
		var path1, path2, labels string
		if i < len(result.Camera1) {
			path1 = filepath.Base(result.Camera1[i].Filepath())
			labels = strings.Join(result.Labels1[i], ",")
		}
		if i < len(result.Camera2) {
			path2 = filepath.Base(result.Camera2[i].Filepath())
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, path1, path2, labels)
	}
	tw.Flush()
}

func dirArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
