// Command progc compiles and links shader programs and reports the driver
// diagnostics.
//
// Usage:
//
//	progc [flags] [vertex fragment]
//
// With two files it builds one program; files ending in .wgsl are WGSL,
// anything else GLSL. With -manifest it builds every program the manifest
// lists. With neither it builds the built-in tutorial programs.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gogpu/shaderprog"
	"github.com/gogpu/shaderprog/backend"
	"github.com/gogpu/shaderprog/manifest"
	"github.com/gogpu/shaderprog/shaders"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// config is the parsed command line.
type config struct {
	backend  string
	manifest string
	watch    bool
	validate bool
	verbose  bool
	color    string
	files    []string
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("progc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.backend, "backend", "offline", "backend: "+strings.Join(backend.Available(), ", "))
	fs.StringVar(&cfg.manifest, "manifest", "", "manifest file (.yaml, .yml or .toml)")
	fs.BoolVar(&cfg.watch, "watch", false, "rebuild whenever a source file changes")
	fs.BoolVar(&cfg.validate, "validate", false, "run the WGSL validator after parsing (offline and wgpu backends)")
	fs.BoolVar(&cfg.verbose, "v", false, "log builder and backend activity")
	fs.StringVar(&cfg.color, "color", "auto", "color output: auto, always or never")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: progc [flags] [vertex fragment]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.files = fs.Args()
	switch {
	case len(cfg.files) != 0 && len(cfg.files) != 2:
		return cfg, errors.New("expected a vertex and a fragment file")
	case len(cfg.files) == 2 && cfg.manifest != "":
		return cfg, errors.New("-manifest and source files are mutually exclusive")
	case cfg.watch && len(cfg.files) == 0 && cfg.manifest == "":
		return cfg, errors.New("-watch needs source files or a manifest")
	}
	if !backend.IsRegistered(cfg.backend) {
		return cfg, fmt.Errorf("unknown backend %q", cfg.backend)
	}
	if !slices.Contains([]string{"auto", "always", "never"}, cfg.color) {
		return cfg, fmt.Errorf("unknown -color mode %q", cfg.color)
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, "progc:", err)
		}
		return 2
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if cfg.verbose {
		shaderprog.SetLogger(logger)
		defer shaderprog.SetLogger(nil)
	}

	opened, err := backend.Open(cfg.backend, backend.Config{Logger: logger, Validate: cfg.validate})
	if err != nil {
		fmt.Fprintln(stderr, "progc:", err)
		return 1
	}
	defer opened.Close()

	b, err := shaderprog.NewBuilder(opened.Device, opened.Options...)
	if err != nil {
		fmt.Fprintln(stderr, "progc:", err)
		return 1
	}
	r := newReporter(stdout, cfg.color)

	if cfg.watch {
		if err := watch(cfg, b, r, logger); err != nil {
			fmt.Fprintln(stderr, "progc:", err)
			return 1
		}
		return 0
	}

	if !buildAll(cfg, b, r) {
		return 1
	}
	return 0
}

// buildAll loads the requested variants and builds each one, reporting as it
// goes. It reports whether every program linked.
func buildAll(cfg config, b *shaderprog.Builder, r *reporter) bool {
	variants, err := loadVariants(cfg, b.Device().Language())
	if err != nil {
		r.Failure("", err)
		return false
	}
	ok := true
	for _, v := range variants {
		p, err := b.NewAttempt(v.Vertex, v.Fragment).WithLabel(v.Name).Run()
		if err != nil {
			r.Failure(v.Name, err)
			ok = false
			continue
		}
		r.Success(v.Name)
		p.Delete()
	}
	return ok
}

func loadVariants(cfg config, lang shaderprog.Language) ([]shaderprog.Variant, error) {
	switch {
	case cfg.manifest != "":
		m, err := manifest.Load(cfg.manifest)
		if err != nil {
			return nil, err
		}
		return m.Variants()
	case len(cfg.files) == 2:
		vs, err := readSource(cfg.files[0], shaderprog.StageVertex)
		if err != nil {
			return nil, err
		}
		fs, err := readSource(cfg.files[1], shaderprog.StageFragment)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(cfg.files[1]), filepath.Ext(cfg.files[1]))
		return []shaderprog.Variant{{Name: name, Vertex: vs, Fragment: fs}}, nil
	default:
		return shaders.Variants(lang), nil
	}
}

func readSource(path string, stage shaderprog.Stage) (shaderprog.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return shaderprog.Source{}, err
	}
	lang := shaderprog.LanguageGLSL
	if strings.EqualFold(filepath.Ext(path), ".wgsl") {
		lang = shaderprog.LanguageWGSL
	}
	return shaderprog.Source{Stage: stage, Language: lang, Text: string(data), Label: path}, nil
}

// watchedFiles returns the files whose change triggers a rebuild.
func watchedFiles(cfg config) ([]string, error) {
	if cfg.manifest == "" {
		return cfg.files, nil
	}
	m, err := manifest.Load(cfg.manifest)
	if err != nil {
		return nil, err
	}
	return append([]string{cfg.manifest}, m.Files()...), nil
}
