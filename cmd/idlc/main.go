package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	idlc "github.com/mink-lang/idlc"
)

const version = "0.1.0"

type cliArgs struct {
	output                 string
	lang                   string
	skel                   bool
	includeRoots           []string
	dump                   string
	marking                string
	noTypedObjects         bool
	allowUndefinedBehavior bool
	timePhases             bool
	showVersion            bool
}

func readArgs() (*cliArgs, []string, *pflag.FlagSet) {
	fs := pflag.NewFlagSet("idlc", pflag.ContinueOnError)
	a := &cliArgs{}

	fs.StringVarP(&a.output, "output", "o", "", "output file or directory")
	fs.Bool("c", true, "generate C (default)")
	fs.Bool("cpp", false, "generate C++")
	fs.Bool("java", false, "generate Java")
	fs.Bool("rust", false, "generate Rust")
	fs.BoolVar(&a.skel, "skel", false, "emit the invoke skeleton instead of the implementation stub")
	fs.StringArrayVarP(&a.includeRoots, "include", "I", nil, "additional include search root (repeatable)")
	fs.StringVar(&a.dump, "dump", "", "dump a phase (pst, ast, mir) and exit")
	fs.StringVar(&a.marking, "marking", "", "prepend a file's contents as a banner")
	fs.BoolVar(&a.noTypedObjects, "no-typed-objects", false, "C backend only: emit the generic opaque object type")
	fs.BoolVar(&a.allowUndefinedBehavior, "allow-undefined-behavior", false, "relax numeric-literal range checking")
	fs.BoolVar(&a.timePhases, "time-phases", false, "print per-phase timing to stderr")
	fs.BoolVar(&a.showVersion, "version", false, "print the version and exit")

	return a, nil, fs
}

func resolveLang(fs *pflag.FlagSet) (string, error) {
	langs := []string{}
	if fs.Changed("c") {
		langs = append(langs, "c")
	}
	for _, name := range []string{"cpp", "java", "rust"} {
		v, _ := fs.GetBool(name)
		if v {
			langs = append(langs, name)
		}
	}
	if len(langs) > 1 {
		return "", fmt.Errorf("--c, --cpp, --java, --rust are mutually exclusive")
	}
	if len(langs) == 1 {
		return langs[0], nil
	}
	return "c", nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	args, _, fs := readArgs()
	if err := fs.Parse(argv); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if args.showVersion {
		fmt.Println("idlc", version)
		return 0
	}

	lang, err := resolveLang(fs)
	if err != nil {
		printFatal(err)
		return 1
	}
	args.lang = lang

	if args.skel && (args.lang == "java" || args.lang == "rust") {
		printFatal(fmt.Errorf("--skel is not accepted with --%s", args.lang))
		return 1
	}

	positional := fs.Args()
	if len(positional) != 1 {
		fmt.Fprintln(os.Stderr, "usage: idlc [flags] <file.idl>")
		fs.PrintDefaults()
		return 2
	}
	inputPath := positional[0]

	cfg := idlc.NewCompilerConfig()
	cfg.AllowUndefinedBehavior = args.allowUndefinedBehavior
	cfg.NoTypedObjects = args.noTypedObjects
	cfg.IncludeRoots = args.includeRoots
	cfg.MarkingFile = args.marking
	cfg.TimePhases = args.timePhases

	if diag := compileAndEmit(inputPath, args, cfg); diag != nil {
		printFatal(diag)
		return 1
	}
	return 0
}

func printFatal(err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(os.Stderr, "error: ")
	fmt.Fprintln(os.Stderr, err)
}

func printWarning(diag *idlc.Diagnostic) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(os.Stderr, "warning: ")
	fmt.Fprintln(os.Stderr, diag)
}

func compileAndEmit(inputPath string, args *cliArgs, cfg *idlc.CompilerConfig) *idlc.Diagnostic {
	timer := idlc.NewPhaseTimer(args.timePhases)

	if args.dump == "pst" {
		src, err := os.ReadFile(inputPath)
		if err != nil {
			return idlc.FatalIO(inputPath, err)
		}
		lexer := idlc.NewLexer(inputPath, src)
		tokens, diag := lexer.Tokenize()
		if diag != nil {
			return diag
		}
		parser := idlc.NewParser(inputPath, tokens)
		pst, diag := parser.ParseCompilationUnit()
		if diag != nil {
			return diag
		}
		fmt.Print(idlc.DumpPST(pst))
		return nil
	}

	store := idlc.NewIDLStore(cfg)
	var root *idlc.CompilationUnit
	var diag *idlc.Diagnostic

	timer.Time("load", func() *idlc.Diagnostic {
		root, diag = store.LoadRoot(inputPath)
		return diag
	})
	if diag != nil {
		return diag
	}
	for _, w := range store.Warnings {
		printWarning(w)
	}

	if args.dump == "ast" {
		fmt.Print(idlc.DumpAST(root))
		return nil
	}

	if diag := idlc.CheckDuplicateParameters(store); diag != nil {
		return diag
	}

	var order []string
	timer.Time("cycles", func() *idlc.Diagnostic {
		order, diag = idlc.CheckAcyclicity(store)
		return diag
	})
	if diag != nil {
		return diag
	}

	var layouts map[string]idlc.StructLayout
	timer.Time("layout", func() *idlc.Diagnostic {
		layouts, diag = idlc.VerifyStructLayouts(store, order)
		return diag
	})
	if diag != nil {
		return diag
	}

	var mir *idlc.MIR
	timer.Time("lower", func() *idlc.Diagnostic {
		mir, diag = idlc.LowerToMIR(store, order, layouts, cfg)
		return diag
	})
	if diag != nil {
		return diag
	}

	if diag := idlc.VerifyInterfaceCollisions(mir); diag != nil {
		return diag
	}

	if args.dump == "mir" {
		fmt.Print(idlc.DumpMIR(mir))
		return nil
	}

	backend := selectBackend(args.lang, cfg.NoTypedObjects)

	var out string
	timer.Time("codegen", func() *idlc.Diagnostic {
		out = emitAllInterfaces(mir, backend, args.skel, cfg)
		return nil
	})

	if cfg.MarkingFile != "" {
		marking, diag := idlc.LoadMarking(cfg.MarkingFile, backend.MarkingStyle())
		if diag != nil {
			return diag
		}
		out = marking + out
	}

	if args.timePhases {
		fmt.Fprint(os.Stderr, timer.Report())
	}

	return writeOutput(args.output, args.lang, out)
}

func selectBackend(lang string, noTypedObjects bool) idlc.Backend {
	switch lang {
	case "cpp":
		return idlc.CppBackend{}
	case "java":
		return idlc.JavaBackend{}
	case "rust":
		return idlc.RustBackend{}
	default:
		return idlc.CBackend{NoTypedObjects: noTypedObjects}
	}
}

func emitAllInterfaces(mir *idlc.MIR, backend idlc.Backend, skel bool, cfg *idlc.CompilerConfig) string {
	out := ""
	for _, iface := range mir.Interfaces {
		if skel {
			out += backend.GenerateInvoke(mir, iface, cfg)
		} else {
			out += backend.GenerateImplementation(mir, iface, cfg)
		}
		out += "\n"
	}
	return out
}

func writeOutput(output, lang, content string) *idlc.Diagnostic {
	if output == "" {
		fmt.Print(content)
		return nil
	}
	if lang == "java" || lang == "rust" {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return idlc.FatalIO(output, err)
		}
		path := filepath.Join(output, "generated."+lang)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return idlc.FatalIO(path, err)
		}
		return nil
	}
	if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
		return idlc.FatalIO(output, err)
	}
	return nil
}
