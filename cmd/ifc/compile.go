package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mustermeiszer/ifc/internal/cache"
	"github.com/mustermeiszer/ifc/internal/codegen"
	"github.com/mustermeiszer/ifc/internal/compiler"
	"github.com/mustermeiszer/ifc/internal/config"
	"github.com/mustermeiszer/ifc/internal/diagnostics"
	"github.com/mustermeiszer/ifc/internal/lexer"
	"github.com/mustermeiszer/ifc/internal/parser"
	"github.com/mustermeiszer/ifc/internal/pipeline"
)

type compileOptions struct {
	pkg      string
	outDir   string
	project  string
	useCache bool
}

func newCompileCmd() *cobra.Command {
	opts := &compileOptions{}

	cmd := &cobra.Command{
		Use:   "compile [files]",
		Short: "Compile definition files and emit Go dispatch metadata",
		Long: "Compile validates the given interface definition files and writes one\n" +
			"generated Go file per input. Without file arguments, sources are taken\n" +
			"from " + config.ProjectFileName + ".",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.pkg, "package", "p", "", "package name of the generated output")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "output directory (default: next to each source)")
	cmd.Flags().StringVar(&opts.project, "project", "", "path to "+config.ProjectFileName)
	cmd.Flags().BoolVar(&opts.useCache, "cache", false, "skip recompiling unchanged sources")

	return cmd
}

func runCompile(opts *compileOptions, args []string) error {
	sources := args
	var store *cache.Cache

	if len(sources) == 0 || opts.project != "" {
		projectPath := opts.project
		if projectPath == "" {
			projectPath = config.ProjectFileName
		}
		cfg, err := config.Load(projectPath)
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			sources = cfg.SourcePaths()
		}
		if opts.pkg == "" {
			opts.pkg = cfg.Package
		}
		if opts.outDir == "" {
			outDir := filepath.Join(cfg.Dir, cfg.OutDir)
			opts.outDir = outDir
		}
		if cfg.Cache.Enabled || opts.useCache {
			store, err = cache.Open(cfg.CachePath())
			if err != nil {
				return err
			}
			defer store.Close()
		}
	} else if opts.useCache {
		var err error
		store, err = cache.Open(".ifc-cache.db")
		if err != nil {
			return err
		}
		defer store.Close()
	}

	if opts.pkg == "" {
		return fmt.Errorf("no output package name: pass --package or configure one in %s", config.ProjectFileName)
	}

	for _, src := range sources {
		if err := compileFile(src, opts, store); err != nil {
			return err
		}
	}
	return nil
}

func compileFile(src string, opts *compileOptions, store *cache.Cache) error {
	source, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	outPath := outputPath(src, opts.outDir)

	var hash string
	if store != nil {
		hash = cache.HashSource(source)
		output, hit, err := store.Get(src, hash)
		if err != nil {
			return err
		}
		if hit {
			return os.WriteFile(outPath, output, 0o644)
		}
	}

	defs, errs := compileSource(src, string(source))
	if len(errs) > 0 {
		printDiagnostics(os.Stderr, errs, stderrIsTTY())
		return fmt.Errorf("%s: compilation failed with %d error(s)", src, len(errs))
	}
	if len(defs) == 0 {
		return fmt.Errorf("%s: no interface definitions found", src)
	}

	output, err := codegen.Generate(defs, opts.pkg)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}

	if err := os.WriteFile(outPath, output, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	if store != nil {
		if err := store.Put(src, hash, output); err != nil {
			return err
		}
	}
	return nil
}

// compileSource runs the full pipeline over one source file.
func compileSource(path, source string) ([]*compiler.Def, []*diagnostics.DiagnosticError) {
	cp := &compiler.CompilerProcessor{}
	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		cp,
	)
	ctx := p.Run(&pipeline.PipelineContext{FilePath: path, SourceCode: source})
	return cp.Defs, ctx.Errors
}

func outputPath(src, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(src)
	}
	return filepath.Join(dir, base+"_ifc.go")
}
