// Command deeplinkctl resolves URLs against the routes of a deeplinks
// configuration file and replays their dispatch on a headless navigator.
//
//	deeplinkctl -config routes.toml app://item/42 "https://example.com/search?q=go"
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/BrandonKowalski/deeplinks/pkg/deeplinks"
	"github.com/BrandonKowalski/deeplinks/pkg/deeplinks/config"
	"github.com/BrandonKowalski/deeplinks/pkg/deeplinks/navstack"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the exit status: 0 when every URL resolved cleanly, 1 when one
// did not, 2 on usage or setup errors.
func run(args []string) int {
	flags := flag.NewFlagSet("deeplinkctl", flag.ContinueOnError)
	configPath := flags.String("config", "deeplinks.toml", "path to the TOML configuration")
	lang := flags.String("lang", "en", "language of error messages")
	patterns := flags.Bool("patterns", false, "print the compiled pattern of every route and exit")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if cfg.LogPath != "" {
		deeplinks.SetLogPath(cfg.LogPath)
	}
	deeplinks.SetRawLogLevel(cfg.LogLevel)
	defer deeplinks.CloseLogger()

	if *patterns {
		return printPatterns(cfg)
	}

	localizer, err := deeplinks.NewLocalizer(*lang)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	status := 0
	for _, raw := range flags.Args() {
		if !resolve(cfg, localizer, raw) {
			status = 1
		}
	}
	return status
}

func printPatterns(cfg *config.Config) int {
	status := 0
	for _, route := range cfg.Routes {
		text, err := deeplinks.PatternText(route.Path(), cfg.ParameterSyntax())
		if err == nil {
			_, err = deeplinks.Compile(route.Path(), cfg.ParameterSyntax())
		}
		if err != nil {
			fmt.Printf("%-16s error: %v\n", route.Name, err)
			status = 1
			continue
		}
		fmt.Printf("%-16s %s\n", route.Name, text)
	}
	return status
}

// resolve runs one URL on a fresh navigator and reports whether it was
// matched and handled without error.
func resolve(cfg *config.Config, localizer *i18n.Localizer, raw string) bool {
	fmt.Println(raw)

	u, err := url.Parse(raw)
	if err != nil {
		fmt.Printf("  invalid url: %v\n", err)
		return false
	}

	nav := navstack.New()
	names := make(map[deeplinks.Deeplink]string, len(cfg.Routes))
	registry := deeplinks.NewRegistry()
	for _, route := range cfg.Routes {
		link := deeplinks.Link[map[string]string](newRoute(route, nav))
		names[link] = route.Name
		registry.Register(link)
	}

	service := deeplinks.New(cfg.Configuration(), deeplinks.Sources{
		Provider:      registry,
		Delegate:      nav,
		DataSource:    nav,
		Canonicalizer: cfg.Canonicalizer(),
	})

	link, err := service.GetDeeplink(u)
	if err != nil {
		fmt.Printf("  lookup failed: %v\n", err)
		return false
	}
	if link == nil {
		fmt.Println("  no route matches")
		return false
	}

	request := service.Extract(u)
	parameters, _ := json.Marshal(request.Parameters)
	fmt.Printf("  route:      %s\n", names[link])
	fmt.Printf("  segments:   [%s]\n", strings.Join(request.Segments, ", "))
	fmt.Printf("  parameters: %s\n", parameters)

	ok := true
	service.Process(link, u, func(err *deeplinks.ProcessingError) {
		fmt.Printf("  error:      %s\n", err.Localize(localizer))
		ok = false
	})
	fmt.Printf("  dispatch:   %s\n", nav.Transcript())
	return ok
}

func newRoute(route config.RouteConfig, nav *navstack.Navigator) *deeplinks.Route[map[string]string] {
	return &deeplinks.Route[map[string]string]{
		Pattern:   route.Path(),
		Loader:    route.Loader,
		RootReset: route.RootReset,
		OnHandle: func(segments []string, params map[string]string, done func(deeplinks.Action, error)) {
			done(deeplinks.Present(nav.NewScene(route.Name), deeplinks.StrategyPrimary), nil)
		},
	}
}
