/*
Package runner executes fixture suites against an automaton engine.

A suite is an automaton, a batch of words and, optionally, the verdict expected
for each word and for the emptiness check. The runner loads every suite from a
SuiteLoader, evaluates it and hands the outcome to a Reporter.

# Key Components

  - Runner: loads, evaluates and compares suites, producing a Report.
  - Reporter: decouples how outcomes are presented (text, JSON Lines).
  - TextReporter: a line per suite, with the failing cases spelled out.
  - JSONReporter: a JSON object per suite followed by a summary object.

# Usage

	r := runner.NewRunner(engine, loader,
		runner.WithReporter(runner.NewTextReporter(os.Stdout)),
		runner.WithFailFast(true),
	)

	report, err := r.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if !report.OK() {
		os.Exit(1)
	}
*/
package runner
