package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/invoicing-service/pkg/batch"
	"github.com/invoicing-service/pkg/config"
	"github.com/invoicing-service/pkg/logger"
	"github.com/invoicing-service/pkg/party"
	"github.com/invoicing-service/pkg/pdf"
	"github.com/invoicing-service/pkg/server"
)

func main() {
	app := &cli.App{
		Name:  "invoicer",
		Usage: "render billing invoices as PDF documents from job records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a YAML config file",
			},
		},
		Commands: []*cli.Command{
			generateCommand(),
			serveCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "render every job document in the jobs directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "jobs", Usage: "directory of job documents"},
			&cli.StringFlag{Name: "senders", Usage: "directory of sender records"},
			&cli.StringFlag{Name: "recipients", Usage: "directory of recipient records"},
			&cli.StringFlag{Name: "out", Usage: "output directory for rendered PDFs"},
			&cli.IntFlag{Name: "days-due", Usage: "business days until the due date"},
		},
		Action: func(c *cli.Context) error {
			cfg, log, err := setup(c)
			if err != nil {
				return err
			}
			defer log.Sync()

			cat, err := party.LoadCatalog(cfg.SendersDir, cfg.RecipientsDir)
			if err != nil {
				return err
			}
			log.Info("catalog loaded",
				zap.Int("senders", cat.NumSenders()),
				zap.Int("recipients", cat.NumRecipients()),
			)

			runner := &batch.Runner{
				Catalog: cat,
				Renderer: pdf.NewRenderer(pdf.Config{
					OutputDir: cfg.OutputDir,
					DaysDue:   cfg.DaysDue,
				}),
				Log: log,
			}
			_, err = runner.Run(cfg.JobsDir)
			return err
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve invoice generation over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address"},
			&cli.StringFlag{Name: "senders", Usage: "directory of sender records"},
			&cli.StringFlag{Name: "recipients", Usage: "directory of recipient records"},
			&cli.StringFlag{Name: "out", Usage: "output directory for rendered PDFs"},
			&cli.IntFlag{Name: "days-due", Usage: "business days until the due date"},
		},
		Action: func(c *cli.Context) error {
			cfg, log, err := setup(c)
			if err != nil {
				return err
			}
			defer log.Sync()

			cat, err := party.LoadCatalog(cfg.SendersDir, cfg.RecipientsDir)
			if err != nil {
				return err
			}
			renderer := pdf.NewRenderer(pdf.Config{
				OutputDir: cfg.OutputDir,
				DaysDue:   cfg.DaysDue,
			})
			srv := server.New(log, cat, renderer)

			log.Info("listening", zap.String("addr", cfg.HTTP.Addr))
			return http.ListenAndServe(cfg.HTTP.Addr, srv.Router())
		},
	}
}

// setup loads the config file, applies command-line overrides, and builds
// the logger.
func setup(c *cli.Context) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if c.IsSet("jobs") {
		cfg.JobsDir = c.String("jobs")
	}
	if c.IsSet("senders") {
		cfg.SendersDir = c.String("senders")
	}
	if c.IsSet("recipients") {
		cfg.RecipientsDir = c.String("recipients")
	}
	if c.IsSet("out") {
		cfg.OutputDir = c.String("out")
	}
	if c.IsSet("days-due") {
		cfg.DaysDue = c.Int("days-due")
	}
	if c.IsSet("addr") {
		cfg.HTTP.Addr = c.String("addr")
	}
	return cfg, logger.New(cfg.Log.Level, cfg.Log.Format), nil
}
