package main

import (
	"log"
	"os"

	"github.com/pabyerly/BaitsTools/baits_api"
	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"
)

const version = "0.1.0dev"

func main() {
	app := &cli.App{
		Name:            "baitstools",
		Usage:           "A toolkit to design sequence capture baits from SNP tables and annotations",
		HideHelpCommand: true,
		Version:         version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log debug messages",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log warnings and errors",
			},
		},
		Before: func(Cctx *cli.Context) error {
			logrus.SetOutput(os.Stderr)
			switch {
			case Cctx.Bool("verbose"):
				logrus.SetLevel(logrus.DebugLevel)
			case Cctx.Bool("quiet"):
				logrus.SetLevel(logrus.WarnLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "stacks2baits",
				Usage: "Select SNPs from a Stacks populations summary table and design baits around them",
				Flags: baits_api.StacksFlags(),
				Action: func(Cctx *cli.Context) error {
					config, err := baits_api.ReadConfig(Cctx)
					if err != nil {
						return err
					}
					return baits_api.Stacks2Baits(config, version)
				},
			},
			{
				Name:  "annot2baits",
				Usage: "Extract annotated regions from a reference and tile baits over them",
				Flags: baits_api.AnnotFlags(),
				Action: func(Cctx *cli.Context) error {
					config, err := baits_api.ReadConfig(Cctx)
					if err != nil {
						return err
					}
					return baits_api.Annot2Baits(config, version)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.New(os.Stderr, "", 0).Fatal(err)
	}
}
