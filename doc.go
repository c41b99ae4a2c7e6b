// Package flatconf combines configuration values from heterogeneous sources
// into one flat, precedence-ordered view.
//
// Quick Start:
//
//	cfg, err := flatconf.New(
//	    flatconf.Variable{Name: "listen_addr", Default: ":8080", Help: "listen address"},
//	    flatconf.Variable{Name: "verbose", Short: "v", Action: flatconf.ActionStoreTrue, Default: false},
//	)
//
//	args, err := cfg.NewParser().Parse(os.Args[1:])
//	cfg.PushFront(args)
//	cfg.PushBack(map[string]any{"listen_addr": ":9090"})
//
//	addr, err := cfg.Values().String("listen_addr")
//
// Sources are searched front to back; the first present value wins, and the
// variable's declared default applies when no source supplies one. Recognized
// source shapes: map[string]any, *CLIArgs (from the generated parser), and
// *ini.Section (attached by FileConfig.Read).
//
// The resulting view is flat to keep values comparable between sources. If
// you need a hierarchical config, this is not the config for you.
//
// See example_test.go for detailed usage.
package flatconf
