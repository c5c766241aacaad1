package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"portfoliobias/cmd"
	"portfoliobias/internal/ingest"
	"portfoliobias/internal/logger"
	"portfoliobias/internal/util"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "bias",
		Short:        "portfolio bias analysis",
		SilenceUsage: true,
	}
	root.AddCommand(ingestCmd(), enrichCmd(), analyzeCmd(), combineCmd(), pipelineCmd(), serveCmd())

	ctx := logger.WithLogger(context.Background(), logger.New())
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// writeOutput writes to the file named by out, or stdout when out is empty.
func writeOutput(out string, body []byte) error {
	if out == "" {
		_, err := fmt.Println(string(body))
		return err
	}
	return os.WriteFile(out, body, 0o644)
}

func ingestCmd() *cobra.Command {
	var out string
	c := &cobra.Command{
		Use:   "ingest <file.csv>",
		Short: "parse a brokerage csv export into a raw portfolio document",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			parsed, err := ingest.ParsePortfolioCsv(f)
			if err != nil {
				return err
			}
			raw := ingest.BuildRawPortfolio(parsed, filepath.Base(args[0]), util.SystemClock())
			body, err := util.EncodeJson(raw, "  ")
			if err != nil {
				return err
			}
			return writeOutput(out, body)
		},
	}
	c.Flags().StringVarP(&out, "out", "o", "", "output file")
	return c
}

func enrichCmd() *cobra.Command {
	var out string
	var key string
	c := &cobra.Command{
		Use:   "enrich [file.json]",
		Short: "add asset type and momentum data to a raw portfolio",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()

			// with --key the document is read from and written back to the store
			if key != "" {
				secrets, err := util.LoadSecrets()
				if err != nil {
					return err
				}
				deps, err := cmd.InitializeStore(ctx, secrets)
				if err != nil {
					return err
				}
				defer cmd.CloseDependencies(deps)
				written, err := deps.Enricher.EnrichObject(ctx, deps.UploadsRepository, key)
				if err != nil {
					return err
				}
				logger.FromContext(ctx).Infow("enriched portfolio", "key", written)
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("a file or --key is required")
			}
			body, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			raw, err := ingest.DecodeRawPortfolio(body)
			if err != nil {
				return err
			}

			enriched := cmd.NewEnricher().Enrich(ctx, *raw)
			encoded, err := util.EncodeJson(enriched, "  ")
			if err != nil {
				return err
			}
			return writeOutput(out, encoded)
		},
	}
	c.Flags().StringVarP(&out, "out", "o", "", "output file")
	c.Flags().StringVar(&key, "key", "", "csv-uploads/ object key to enrich in the store")
	return c
}

func analyzeCmd() *cobra.Command {
	var out string
	var portfolioID string
	c := &cobra.Command{
		Use:   "analyze <enriched.json>",
		Short: "run all five bias dimensions and combine the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			body, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			portfolio, err := ingest.DecodeEnrichedPortfolio(body)
			if err != nil {
				return err
			}
			if portfolioID == "" {
				portfolioID = uuid.NewString()
			}

			deps, err := cmd.InitializeDependencies(ctx)
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(deps)

			result, err := deps.ApiHandler.DispatcherHandler.Analyze(ctx, portfolioID, *portfolio)
			if result != nil {
				for d, failure := range result.Failures {
					logger.FromContext(ctx).Errorw("dimension failed", "dimension", d, "error", failure.Error())
				}
			}
			if err != nil {
				return err
			}
			encoded, err := util.EncodeJson(result.Combined, "  ")
			if err != nil {
				return err
			}
			return writeOutput(out, encoded)
		},
	}
	c.Flags().StringVarP(&out, "out", "o", "", "output file")
	c.Flags().StringVar(&portfolioID, "id", "", "portfolio identifier, generated when empty")
	return c
}

func combineCmd() *cobra.Command {
	var out string
	c := &cobra.Command{
		Use:   "combine <portfolioID>",
		Short: "merge the stored dimension results for a portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			deps, err := cmd.InitializeDependencies(ctx)
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(deps)

			combined, err := deps.ApiHandler.CombinerService.CombineStored(ctx, args[0])
			if err != nil {
				return err
			}
			encoded, err := util.EncodeJson(combined, "  ")
			if err != nil {
				return err
			}
			return writeOutput(out, encoded)
		},
	}
	c.Flags().StringVarP(&out, "out", "o", "", "output file")
	return c
}

func pipelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pipeline <key>",
		Short: "move an object in the uploads store one stage forward",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			deps, err := cmd.InitializeDependencies(ctx)
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(deps)

			pipeline := cmd.Pipeline{
				Uploads:    deps.UploadsRepository,
				Enricher:   deps.Enricher,
				Dispatcher: deps.ApiHandler.DispatcherHandler,
			}
			written, err := pipeline.HandleObject(ctx, args[0])
			if err != nil {
				return err
			}
			logger.FromContext(ctx).Infow("handled object", "key", args[0], "wrote", written)
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var port int
	c := &cobra.Command{
		Use:   "serve",
		Short: "start the http api",
		RunE: func(c *cobra.Command, args []string) error {
			deps, err := cmd.InitializeDependencies(c.Context())
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(deps)
			if port == 0 {
				port = deps.Secrets.Port
			}
			return deps.ApiHandler.StartApi(port)
		},
	}
	c.Flags().IntVarP(&port, "port", "p", 0, "port, defaults to PORT")
	return c
}
