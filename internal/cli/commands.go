package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/runner"
)

// ReadRequest loads an automaton request from a YAML or JSON file, or from
// stdin (as JSON) when path is "-".
func ReadRequest(path string) (*codec.Request, error) {
	if path == "-" {
		return codec.DecodeJSON(os.Stdin)
	}
	return codec.DecodeFile(path)
}

// EvalOptions controls the eval command.
type EvalOptions struct {
	Budget int
	JSON   bool
}

// Eval decides the request's test cases and prints either the HTTP response
// envelope or one line per case. It returns an error when the engine fails
// so that the process exit code reflects it.
func Eval(ctx context.Context, eng ports.Evaluator, req *codec.Request, opts EvalOptions, w io.Writer) error {
	ev, err := req.Evaluation(opts.Budget)
	var verdicts []bool
	if err == nil {
		verdicts, err = eng.Evaluate(ctx, ev)
	}

	if opts.JSON {
		var resp codec.ProcessResponse
		if err == nil {
			resp = codec.Processed(req.TestCases, verdicts)
		} else {
			resp = codec.ProcessFailed(err)
		}
		if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
			return encErr
		}
		return err
	}
	if err != nil {
		return err
	}

	for i, accepted := range verdicts {
		verdict := "rejected"
		if accepted {
			verdict = "accepted"
		}
		fmt.Fprintf(w, "%s\t%s\n", ev.Words[i], verdict)
	}
	return nil
}

// Empty runs the emptiness check and prints the result.
func Empty(ctx context.Context, eng ports.Evaluator, req *codec.Request, asJSON bool, w io.Writer) error {
	v, desc, err := req.Description()
	var empty bool
	if err == nil {
		empty, err = eng.IsEmpty(ctx, v, desc)
	}

	if asJSON {
		var resp codec.EmptinessResponse
		if err == nil {
			resp = codec.Checked(empty)
		} else {
			resp = codec.CheckFailed(err)
		}
		if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
			return encErr
		}
		return err
	}
	if err != nil {
		return err
	}

	if empty {
		fmt.Fprintln(w, "empty: the automaton accepts no word")
	} else {
		fmt.Fprintln(w, "non-empty: the automaton accepts at least one word")
	}
	return nil
}

// Graph prints the Mermaid flowchart of the request's automaton.
func Graph(req *codec.Request, w io.Writer) error {
	v, desc, err := req.Description()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, graph.GenerateMermaid(v, desc))
	return err
}

// SuiteOptions controls the suite command.
type SuiteOptions struct {
	Dir      string
	Budget   int
	FailFast bool
	Filter   string
	JSON     bool
	Verbose  bool
	Markdown bool
}

// Suite runs every fixture suite under Dir. The returned report is nil only
// when the run could not start.
func Suite(ctx context.Context, eng ports.Evaluator, opts SuiteOptions, w io.Writer) (*runner.Report, error) {
	loader, err := loam.Open(opts.Dir)
	if err != nil {
		return nil, err
	}

	var reporter runner.Reporter
	if opts.JSON {
		reporter = runner.NewJSONReporter(w)
	} else {
		textOpts := []runner.TextReporterOption{runner.WithVerbose(opts.Verbose)}
		if tui.IsTerminal(w) {
			textOpts = append(textOpts, runner.WithStyler(tui.StatusStyler(w)))
		}
		reporter = runner.NewTextReporter(w, textOpts...)
	}

	runOpts := []runner.Option{
		runner.WithReporter(reporter),
		runner.WithFailFast(opts.FailFast),
		runner.WithBudget(opts.Budget),
	}
	if opts.Filter != "" {
		if _, err := path.Match(opts.Filter, ""); err != nil {
			return nil, fmt.Errorf("invalid filter %q: %w", opts.Filter, err)
		}
		runOpts = append(runOpts, runner.WithFilter(func(id string) bool {
			ok, _ := path.Match(opts.Filter, id)
			return ok
		}))
	}

	report, err := runner.NewRunner(eng, loader, runOpts...).Run(ctx)
	if err != nil || opts.JSON || !opts.Markdown {
		return report, err
	}

	rendered, err := tui.NewRenderer(tui.Width(w, 100))(tui.ReportMarkdown(report))
	if err != nil {
		return report, err
	}
	_, err = io.WriteString(w, rendered)
	return report, err
}
