// Copyright (c) 2026, the nodegen contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package nodegen scaffolds ready to run Express applications.
//
// A Generator materializes a fixed project tree into a destination directory:
// a server entry point, a rendered application file, static router and config
// modules, lint tooling and a package.json manifest. Rendering merges a
// binding of registered modules, middleware and router mounts into text
// templates, static assets are copied verbatim.
package nodegen

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/AlecAivazis/survey/v2"
	"github.com/CloudyKit/jet/v6"
	"github.com/jedib0t/go-pretty/v6/text"
	terminal "golang.org/x/term"
)

// Config configures a generation run
type Config struct {
	// Destination is the directory to scaffold the application into
	Destination string `yaml:"destination"`
	// Name overrides the package name derived from Destination
	Name string `yaml:"name"`
	// Force scaffolds into a non-empty destination without confirmation
	Force bool `yaml:"force"`
	// TemplateDirectory reads templates from a directory instead of the builtin set
	TemplateDirectory string `yaml:"template_directory"`
	// Post configures post-processing of written files using filepath globs
	Post []map[string]string `yaml:"post"`
	// Features selects the optional middleware wired into the generated
	// application, nil enables everything
	Features *Features `yaml:"features"`
	// Sets a custom template delimiter, useful with custom template sets
	CustomLeftDelimiter string `yaml:"left_delimiter"`
	// Sets a custom template delimiter, useful with custom template sets
	CustomRightDelimiter string `yaml:"right_delimiter"`
}

// Features are the optional middleware selections. Every enabled feature adds
// its package dependency to the manifest together with the matching runtime
// registration, the two always travel together.
type Features struct {
	// Logger wires the morgan request logger
	Logger bool `yaml:"logger"`
	// JSONParser wires the framework builtin JSON body parser
	JSONParser bool `yaml:"json_parser"`
	// URLEncodedParser wires the framework builtin URL-encoded body parser
	URLEncodedParser bool `yaml:"urlencoded_parser"`
}

// DefaultFeatures enables every optional middleware
func DefaultFeatures() Features {
	return Features{Logger: true, JSONParser: true, URLEncodedParser: true}
}

type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
}

// ErrAborted indicates the user declined to scaffold into a non-empty
// destination, callers should terminate with a non-zero exit status without
// treating this as a crash
var ErrAborted = errors.New("destination not empty, aborting")

type prompter interface {
	Ask(prompt string) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Ask(prompt string) (string, error) {
	answer := ""
	err := survey.AskOne(&survey.Input{Message: prompt}, &answer)

	return answer, err
}

// Generator scaffolds one application per Generate call
type Generator struct {
	cfg        *Config
	renderer   *renderer
	log        Logger
	out        io.Writer
	prompter   prompter
	isTerminal func() bool
	appName    string
	created    []string
}

// New creates a new generator instance
func New(cfg Config, funcs template.FuncMap) (*Generator, error) {
	g, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}

	g.renderer.funcs = funcs

	return g, nil
}

// NewJet creates a new generator instance using the Jet template engine. The
// builtin templates are written for the default engine so a custom template
// directory is required.
func NewJet(cfg Config, funcs map[string]jet.Func) (*Generator, error) {
	if cfg.TemplateDirectory == "" {
		return nil, fmt.Errorf("the jet engine requires a template directory")
	}

	g, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}

	g.renderer.engine = engineJet
	g.renderer.jetFuncs = funcs

	return g, nil
}

func newGenerator(cfg Config) (*Generator, error) {
	err := validateConfig(&cfg)
	if err != nil {
		return nil, err
	}

	source, err := templateSource(&cfg)
	if err != nil {
		return nil, err
	}

	name := cfg.Name
	if name == "" {
		abs, err := filepath.Abs(cfg.Destination)
		if err != nil {
			return nil, fmt.Errorf("invalid destination %s: %v", cfg.Destination, err)
		}
		name = abs
	}

	appName := NormalizeName(name)
	if appName == "" {
		appName = DefaultAppName
	}

	return &Generator{
		cfg: &cfg,
		renderer: &renderer{
			source:     source,
			leftDelim:  cfg.CustomLeftDelimiter,
			rightDelim: cfg.CustomRightDelimiter,
		},
		out:        os.Stdout,
		prompter:   surveyPrompter{},
		isTerminal: isTerminal,
		appName:    appName,
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Destination == "" {
		cfg.Destination = "."
	}
	cfg.Destination = filepath.Clean(cfg.Destination)

	if cfg.TemplateDirectory != "" {
		_, err := os.Stat(cfg.TemplateDirectory)
		if err != nil {
			return fmt.Errorf("cannot read template directory: %w", err)
		}
	}

	if cfg.Features == nil {
		features := DefaultFeatures()
		cfg.Features = &features
	}

	return nil
}

func templateSource(cfg *Config) (fs.FS, error) {
	if cfg.TemplateDirectory != "" {
		return os.DirFS(cfg.TemplateDirectory), nil
	}

	return builtinTemplates()
}

// Logger configures a logger to use, no logging is done without this
func (g *Generator) Logger(log Logger) {
	g.log = log
}

// Output configures the writer that receives creation notices and the
// post-generation guidance, os.Stdout by default
func (g *Generator) Output(w io.Writer) {
	g.out = w
}

// AppName is the sanitized package name the manifest will carry
func (g *Generator) AppName() string {
	return g.appName
}

// CreatedFiles returns the list of files written during the most recent
// Generate call. Paths are relative to the destination directory and always
// use forward slashes as separators.
func (g *Generator) CreatedFiles() []string {
	return g.created
}

// Generate scaffolds the application. A non-empty destination requires the
// Force flag or an affirmative answer to the confirmation prompt, declining
// returns ErrAborted.
func (g *Generator) Generate() error {
	g.created = nil

	empty, err := g.destinationEmpty()
	if err != nil {
		return err
	}

	if !empty && !g.cfg.Force {
		ok, err := g.confirmOverwrite()
		if err != nil {
			return err
		}

		if !ok {
			if g.log != nil {
				g.log.Infof("not scaffolding into non-empty directory %s", g.cfg.Destination)
			}

			return ErrAborted
		}
	}

	err = g.scaffold()
	if err != nil {
		return err
	}

	g.report()

	return nil
}

// a destination that does not exist yet counts as empty
func (g *Generator) destinationEmpty() (bool, error) {
	entries, err := os.ReadDir(g.cfg.Destination)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("cannot read destination %s: %w", g.cfg.Destination, err)
	}

	return len(entries) == 0, nil
}

// confirmOverwrite asks the user whether to continue, a non-terminal stdin
// declines without prompting
func (g *Generator) confirmOverwrite() (bool, error) {
	if !g.isTerminal() {
		if g.log != nil {
			g.log.Debugf("stdin is not a terminal, declining overwrite of %s", g.cfg.Destination)
		}

		return false, nil
	}

	answer, err := g.prompter.Ask(fmt.Sprintf("destination %s is not empty, continue? [y/N]", g.cfg.Destination))
	if err != nil {
		return false, err
	}

	return isAffirmative(answer), nil
}

func isAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "ok", "true":
		return true
	}

	// anything else declines, including an empty answer
	return false
}

func isTerminal() bool {
	return terminal.IsTerminal(int(os.Stdin.Fd())) && terminal.IsTerminal(int(os.Stdout.Fd()))
}

// scaffold materializes the project tree in a fixed order, later steps write
// into directories earlier steps created
func (g *Generator) scaffold() error {
	dest := g.cfg.Destination
	em := &emitter{log: g.log, out: g.out, post: g.cfg.Post, base: dest}

	if dest != "." {
		err := em.ensureDir(dest, "")
		if err != nil {
			return err
		}
	}

	err := em.copyTemplate(g.renderer.source, "server.js", filepath.Join(dest, "server.js"))
	if err != nil {
		return err
	}

	app, err := g.renderer.Load("app.js.tmpl")
	if err != nil {
		return err
	}

	manifest := NewManifest(g.appName)
	binding := app.Binding

	if g.cfg.Features.Logger {
		binding.Module("logger", "morgan").Use("logger('dev')")
		manifest.AddDependency("morgan", "^1.10.0")
	}
	if g.cfg.Features.JSONParser {
		binding.Use("express.json()")
	}
	if g.cfg.Features.URLEncodedParser {
		binding.Use("express.urlencoded({ extended: false })")
	}

	err = em.ensureDir(dest, "config")
	if err != nil {
		return err
	}
	err = em.copyTemplateMulti(g.renderer.source, "config", filepath.Join(dest, "config"), "*.js")
	if err != nil {
		return err
	}

	err = em.ensureDir(dest, "routers")
	if err != nil {
		return err
	}
	err = em.copyTemplateMulti(g.renderer.source, "routers", filepath.Join(dest, "routers"), "*.js")
	if err != nil {
		return err
	}

	// dotfiles are stored in the template set without their leading dot
	dotfiles := []struct{ src, target string }{
		{"gitignore", ".gitignore"},
		{"eslintrc.js", ".eslintrc.js"},
		{"prettierrc.js", ".prettierrc.js"},
	}
	for _, f := range dotfiles {
		err = em.copyTemplate(g.renderer.source, f.src, filepath.Join(dest, f.target))
		if err != nil {
			return err
		}
	}

	binding.LocalModule("indexRouter", "./routers/index").
		LocalModule("userRouter", "./routers/user").
		MountRouter("/", "indexRouter").
		MountRouter("/user", "userRouter")

	rendered, err := app.Render()
	if err != nil {
		return err
	}

	err = em.write(filepath.Join(dest, "app.js"), rendered, 0)
	if err != nil {
		return err
	}

	serialized, err := manifest.Serialize()
	if err != nil {
		return err
	}

	err = em.write(filepath.Join(dest, "package.json"), serialized, 0)
	if err != nil {
		return err
	}

	g.created = em.created

	return nil
}

func (g *Generator) report() {
	fmt.Fprintln(g.out)

	if g.cfg.Destination != "." {
		fmt.Fprintf(g.out, "  change directory:\n    %s\n\n", text.Bold.Sprintf("cd %s", g.cfg.Destination))
	}

	fmt.Fprintf(g.out, "  install dependencies:\n    %s\n\n", text.Bold.Sprint("npm install"))
	fmt.Fprintf(g.out, "  run the app:\n    %s\n\n", text.Bold.Sprint("npm start"))
}
