/*
Package runner drives an onboarding flow from a line-oriented terminal or pipe.

It is the bridge between an onboarding.Flow and the outside world: it renders the
current step through a pluggable IOHandler, reads commands, and applies them until the
reveal completes or the input ends.

# Key Components

  - Runner: the loop that renders, reads and applies commands.
  - IOHandler: decouples how commands arrive and how views are shown.
  - TextHandler: interactive CLI usage, optional markdown rendering.
  - JSONHandler: JSON-Lines for scripted hosts.

# Usage

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx, flow); err != nil {
		log.Fatal(err)
	}
*/
package runner
