package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/swelljoe/zipcast/internal/app"
	"github.com/swelljoe/zipcast/internal/config"
	"github.com/swelljoe/zipcast/internal/render"
	"github.com/swelljoe/zipcast/internal/weather"
)

// exitSentinel ends the interactive loop.
const exitSentinel = "4"

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	flag.StringVar(&cfg.ZipsFile, "zips", cfg.ZipsFile, "Path to the postal code CSV")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to a SQLite location index (overrides -zips)")
	flag.IntVar(&cfg.MaxPeriods, "periods", cfg.MaxPeriods, "Maximum forecast periods to show")
	flag.IntVar(&cfg.WrapWidth, "width", cfg.WrapWidth, "Wrap width for detailed forecasts")
	flag.BoolVar(&cfg.SkipMalformedPeriods, "skip-malformed", cfg.SkipMalformedPeriods, "Skip undecodable forecast periods instead of dropping the forecast")
	flag.Parse()

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One-shot mode: zipcast 90210
	if flag.NArg() > 0 {
		ok := true
		for _, zip := range flag.Args() {
			if !lookup(ctx, a.Service, zip, cfg.WrapWidth, os.Stdout) {
				ok = false
			}
		}
		if !ok {
			a.Close()
			os.Exit(1)
		}
		return
	}

	run(ctx, a.Service, cfg.WrapWidth, os.Stdin, os.Stdout)
}

// run prompts for postal codes until the sentinel, EOF, or cancellation.
// Input is read on its own goroutine so cancellation is seen while the
// prompt is waiting.
func run(ctx context.Context, svc *weather.Service, width int, in io.Reader, out io.Writer) {
	done := make(chan struct{})
	defer close(done)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()

loop:
	for {
		fmt.Fprint(out, "Enter Zipcode (or 4 to Exit): ")

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			break loop
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(out)
			break
		}

		zip := strings.TrimSpace(line)
		if zip == "" {
			continue
		}
		if zip == exitSentinel {
			break
		}

		lookup(ctx, svc, zip, width, out)
		if ctx.Err() != nil {
			break
		}
	}
	fmt.Fprintln(out, "[+] Exiting Program...")
}

// lookup resolves and prints one postal code. It reports whether a forecast
// was printed.
func lookup(ctx context.Context, svc *weather.Service, zip string, width int, out io.Writer) bool {
	res, err := svc.Resolve(ctx, zip)
	if err != nil {
		if errors.Is(err, weather.ErrLocationNotFound) {
			fmt.Fprintf(out, "[-] Zipcode %s not found.\n", zip)
		} else {
			fmt.Fprintf(out, "[-] Lookup failed: %v\n", err)
		}
		return false
	}

	for _, line := range render.Render(res.Location, res.Forecast, width) {
		fmt.Fprintln(out, line)
	}
	if res.Err != nil {
		fmt.Fprintln(out, "[-] Forecast unavailable, try again later.")
		return false
	}
	return true
}
