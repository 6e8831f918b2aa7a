package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/bbernstein/nearstop/internal/app"
	"github.com/bbernstein/nearstop/internal/config"
	"github.com/bbernstein/nearstop/internal/metrics"
	"github.com/bbernstein/nearstop/internal/models"
	"github.com/bbernstein/nearstop/internal/server"
)

func main() {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	if err := newCLI(cfg).Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func newCLI(cfg *config.Config) *cli.App {
	return &cli.App{
		Name:  "nearstop",
		Usage: "Find the nearest MBTA stop to a place and its upcoming arrivals",

		Commands: []*cli.Command{
			lookupCommand(cfg),
			serveCommand(cfg),
		},
	}
}

func lookupCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "print the nearest stop to a place name or address",
		ArgsUsage: "<place name>",
		Action: func(c *cli.Context) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			placeName := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if placeName == "" {
				var err error
				placeName, err = prompt(c.App.Reader, c.App.Writer)
				if err != nil {
					return err
				}
			}

			result, err := app.New(cfg, nil, nil).Lookup.FindNearestStop(c.Context, placeName)
			if err != nil {
				return err
			}

			printSummary(c.App.Writer, placeName, result)
			return nil
		},
	}
}

func serveCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the local web server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Value: ":8080",
				Usage: "listen target for the web server",
			},
		},
		Action: func(c *cli.Context) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			m := metrics.New()
			a := app.New(cfg, m, nil)

			webApp := server.New(server.Routes{
				Index:   a.IndexHandler,
				Nearest: a.NearestHandler,
				Stops:   a.StopsHandler,
				Metrics: m,
			})

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				<-ctx.Done()
				log.Info().Msg("Shutting down server")
				if err := webApp.Shutdown(); err != nil {
					log.Error().Err(err).Msg("Server shutdown failed")
				}
			}()

			listen := c.String("listen")
			log.Info().Str("listen", listen).Str("env", cfg.Environment).Msg("Starting server")
			return webApp.Listen(listen)
		},
	}
}

var errPlaceRequired = errors.New("a place name is required")

func prompt(r io.Reader, w io.Writer) (string, error) {
	if r == nil {
		r = os.Stdin
	}
	_, _ = fmt.Fprint(w, "Enter a place name or address: ")

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}

	placeName := strings.TrimSpace(line)
	if placeName == "" {
		return "", errPlaceRequired
	}
	return placeName, nil
}

func printSummary(w io.Writer, placeName string, result *models.LookupResult) {
	accessibleText := "is not"
	if result.WheelchairAccessible {
		accessibleText = "is"
	}
	_, _ = fmt.Fprintf(w, "The nearest MBTA stop to '%s' is '%s', which %s wheelchair accessible.\n",
		placeName, result.StationName, accessibleText)

	if len(result.Arrivals) == 0 {
		_, _ = fmt.Fprintln(w, "No upcoming arrivals found.")
		return
	}

	minutes := make([]string, 0, len(result.Arrivals))
	for _, m := range result.Arrivals {
		minutes = append(minutes, strconv.Itoa(m))
	}
	_, _ = fmt.Fprintf(w, "Upcoming arrivals in minutes: %s\n", strings.Join(minutes, ", "))
}
