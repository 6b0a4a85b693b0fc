// Package planner coordinates the calls that cross the process boundary
// around the planning board.
//
// # Manager
//
// The Manager handles:
//
//  1. Startup: catalogue, starter plan, stored session and saved-plan check
//  2. Plan generation followed by save and apply
//  3. Skipping setup by storing an empty plan
//  4. Saving the current board
//
// # Basic Usage
//
//	manager := planner.NewManager(settings, apiClient, accounts, logger, func(event planner.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	boot, err := manager.Initialize(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if boot.NeedsOnboarding() {
//	    apply, err := manager.Generate(ctx, boot.User.ID, "Artificial Intelligence")
//	    if err == nil {
//	        boot.Board = board.Reduce(boot.Board, apply)
//	    }
//	}
//
// # Concurrency
//
// Initialize runs its three loads in an errgroup. All other methods are
// synchronous; callers such as the terminal UI run them off the event loop.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// During Initialize the callback may be invoked from several goroutines.
package planner
