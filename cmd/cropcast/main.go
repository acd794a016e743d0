// Command cropcast prints a 15-day forecast and planting suggestions for a location.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fakhrymubarak/cropcast/internal/config"
	"github.com/fakhrymubarak/cropcast/internal/render"
	"github.com/fakhrymubarak/cropcast/internal/service"
)

func main() {
	location := flag.String("location", "", "city to look up")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s -location <city>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *location == "" && flag.NArg() > 0 {
		*location = strings.Join(flag.Args(), " ")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	svc := service.NewLookupService(render.TextSurface{W: os.Stdout})
	code := run(ctx, svc, *location)

	stop()
	_ = config.GetLogger().Sync()
	os.Exit(code)
}

// run performs one lookup and returns the process exit status.
func run(ctx context.Context, svc service.LookupServiceInterface, location string) int {
	_, err := svc.Lookup(ctx, "terminal", location)
	switch {
	case errors.Is(err, service.ErrEmptyLocation):
		fmt.Fprintln(os.Stderr, service.MsgEmptyLocation)
		return 2
	case err != nil:
		return 1
	}
	return 0
}
