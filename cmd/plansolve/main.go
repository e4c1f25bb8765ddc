package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tempoplan/planner-runtime/engine"
	"github.com/tempoplan/planner-runtime/planner"
)

func main() {
	var (
		enginePath  = flag.String("engine", "", "Path to planner engine artifact (default: search conventional locations)")
		domainPath  = flag.String("domain", "", "Path to PDDL domain file")
		problemPath = flag.String("problem", "", "Path to PDDL problem file")
		content     = flag.Bool("content", false, "Read both files on the host and solve from their text")
		fsRoot      = flag.String("fsroot", "", "Host directory the engine may read PDDL files from")
		versionOnly = flag.Bool("version-only", false, "Print the engine version and exit")
		verbose     = flag.Bool("v", false, "Verbose boundary logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			engine.SetLogger(logger)
			planner.SetLogger(logger)
		}
	}

	path := *enginePath
	if path == "" {
		located, err := engine.Locate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Use -engine to point at a planner artifact.")
			os.Exit(1)
		}
		path = located
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(path, *fsRoot); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(path, *domainPath, *problemPath, *fsRoot, *content, *versionOnly); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(enginePath, domainPath, problemPath, fsRoot string, content, versionOnly bool) error {
	ctx := context.Background()

	cfg := &engine.Config{}
	if fsRoot != "" {
		cfg.EnableWASI = true
		cfg.FSRoot = fsRoot
	}

	eng, err := engine.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer eng.Close(ctx)

	art, err := eng.LoadFile(ctx, enginePath)
	if err != nil {
		return err
	}
	inst, err := art.Instantiate(ctx)
	if err != nil {
		return err
	}
	defer inst.Close(ctx)

	version, err := planner.Version(ctx, inst)
	if err != nil {
		return err
	}
	fmt.Printf("Engine:  %s\n", enginePath)
	fmt.Printf("Version: %s\n", version)

	if versionOnly {
		return nil
	}
	if domainPath == "" || problemPath == "" {
		fmt.Println("\nNothing to solve. Pass -domain and -problem.")
		return nil
	}

	return planner.With(ctx, inst, func(p *planner.Planner) error {
		var res planner.Result
		var solveErr error
		if content {
			domainText, err := os.ReadFile(domainPath)
			if err != nil {
				return err
			}
			problemText, err := os.ReadFile(problemPath)
			if err != nil {
				return err
			}
			res, solveErr = p.SolveContent(ctx, string(domainText), string(problemText))
		} else {
			res, solveErr = p.SolveFiles(ctx, domainPath, problemPath)
		}
		if solveErr != nil {
			return solveErr
		}

		fmt.Println()
		printResult(res)
		return nil
	})
}

func printResult(res planner.Result) {
	switch res.Outcome {
	case planner.Success:
		fmt.Println("Engine reported success with no plan.")
	case planner.SolutionFound:
		fmt.Printf("Solution found with %d actions.\n", res.PlanLength)
	case planner.NoSolutionFound:
		fmt.Println("No solution exists for this problem.")
	case planner.ParseError:
		fmt.Println("Engine could not parse the PDDL input.")
	case planner.FileError:
		fmt.Println("Engine could not read the PDDL files.")
	case planner.InvalidHandle:
		fmt.Println("Engine rejected the planner handle.")
	}
}
