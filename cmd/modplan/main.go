package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/handiism/modplan/internal/account"
	"github.com/handiism/modplan/internal/api"
	"github.com/handiism/modplan/internal/board"
	"github.com/handiism/modplan/internal/config"
	mphttp "github.com/handiism/modplan/internal/http"
	"github.com/handiism/modplan/internal/logging"
	"github.com/handiism/modplan/internal/planner"
	"github.com/handiism/modplan/internal/report"
	"github.com/handiism/modplan/internal/session"
)

func main() {
	// Command line flags
	var (
		configFlag    = flag.String("config", "", "Path to config file")
		planFlag      = flag.String("plan", "", "Load a plan file (JSON report) onto the starter plan")
		generateFlag  = flag.String("generate", "", "Generate a plan for a focus area, e.g. \"Software Engineering\" (any other value means no specialisation)")
		userFlag      = flag.String("user", "", "User id to generate or save for (defaults to the stored session)")
		recommendFlag = flag.Bool("recommend", false, "Add the recommended module")
		saveFlag      = flag.Bool("save", false, "Store the resulting plan on the server")
		formatFlag    = flag.String("format", "text", "Report format: text, markdown or json")
		outputFlag    = flag.String("output", "", "Write the report to this directory instead of stdout")
		verboseFlag   = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	format, err := report.ParseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, cancelling...")
		cancel()
	}()

	client := api.New(mphttp.NewClient(settings.APIURL, settings.AppName, settings.RequestTimeout), logger)
	accounts := account.NewService(client, session.NewStore(settings.SessionDir, settings.AppName), logger)

	// Progress goes to stderr so the report can be piped.
	manager := planner.NewManager(settings, client, accounts, logger, func(event planner.ProgressEvent) {
		if event.Level == planner.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case planner.LevelError:
			prefix = "❌ "
		case planner.LevelWarning:
			prefix = "⚠️  "
		case planner.LevelSuccess:
			prefix = "✅ "
		case planner.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Fprintln(os.Stderr, prefix+event.Message)
	})

	boot, err := manager.Initialize(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}
	state := boot.Board

	if *planFlag != "" {
		file, err := report.ReadPlanFile(*planFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading plan: %v\n", err)
			os.Exit(1)
		}
		state = file.Apply(state)
	}

	userID := *userFlag
	if userID == "" && boot.SignedIn {
		userID = boot.User.ID
	}

	if *generateFlag != "" {
		if userID == "" {
			fmt.Fprintln(os.Stderr, "Error: -generate needs a signed-in session or -user")
			os.Exit(1)
		}
		apply, err := manager.Generate(ctx, userID, *generateFlag)
		if err != nil {
			if ctx.Err() != nil {
				os.Exit(130)
			}
			fmt.Fprintf(os.Stderr, "Error: %s\n", api.UserMessage(err))
			os.Exit(1)
		}
		state = board.Reduce(state, apply)
	}

	if *recommendFlag {
		state = board.Reduce(state, board.AddRecommended{Recommendation: settings.ToRecommendation()})
	}

	if *saveFlag {
		if userID == "" {
			fmt.Fprintln(os.Stderr, "Error: -save needs a signed-in session or -user")
			os.Exit(1)
		}
		if err := manager.Save(ctx, userID, state); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", api.UserMessage(err))
			os.Exit(1)
		}
	}

	snap := report.NewSnapshot(settings.PlanLabel, boot.User.Name, state, boot.Engine)

	if *outputFlag != "" {
		path, err := report.Export(*outputFlag, format, snap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			os.Exit(1)
		}
		logger.Info("report written", zap.String("path", path))
		fmt.Fprintln(os.Stderr, "✨ Report written to "+path)
		return
	}

	out, err := report.Render(format, snap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(out)
}
