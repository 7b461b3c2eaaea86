// Copyright (c) 2026, the nodegen contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/apex/log"
	clilog "github.com/apex/log/handlers/cli"
	"github.com/choria-io/fisk"
	"gopkg.in/yaml.v3"

	"github.com/nodegen/nodegen"
)

var (
	directory   string
	appName     string
	force       bool
	engine      string
	templateDir string
	configFile  string
	dryRun      bool
	post        map[string]string
	withLogger  bool
	withJSON    bool
	withURLEnc  bool
	debug       bool
	version     string
)

func main() {
	post = map[string]string{}

	app := fisk.New("nodegen", "Generates Express application skeletons")
	app.Version(version)

	app.Help = `
Scaffolds a ready to run Express application into a directory: server entry
point, application module, routers, configuration, lint tooling and a
package.json manifest.
`
	app.Arg("directory", "The directory to generate the application into").Default(".").StringVar(&directory)
	app.Flag("force", "Generate into a non-empty directory without confirmation").Short('f').BoolVar(&force)
	app.Flag("name", "Overrides the package name derived from the directory").StringVar(&appName)
	app.Flag("engine", "The template engine to use (jet, go)").Default("go").EnumVar(&engine, "jet", "go")
	app.Flag("templates", "Reads templates from a directory instead of the builtin set").PlaceHolder("DIR").ExistingDirVar(&templateDir)
	app.Flag("config", "Loads generator settings from a YAML file").PlaceHolder("FILE").ExistingFileVar(&configFile)
	app.Flag("dry-run", "Shows planned file actions without writing anything").BoolVar(&dryRun)
	app.Flag("post", "Post processing steps").PlaceHolder("PATTERN=TOOL").StringMapVar(&post)
	app.Flag("logger", "Wires the request logger middleware").Default("true").BoolVar(&withLogger)
	app.Flag("json", "Wires the JSON body parser").Default("true").BoolVar(&withJSON)
	app.Flag("urlencoded", "Wires the URL-encoded body parser").Default("true").BoolVar(&withURLEnc)
	app.Flag("debug", "Enables debug logging").BoolVar(&debug)

	app.MustParseWithUsage(os.Args[1:])

	log.SetHandler(clilog.New(os.Stderr))
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	// stdout is buffered, flush it on every exit path before choosing the
	// process exit status
	out := bufio.NewWriter(os.Stdout)
	err := run(out)
	out.Flush()

	switch {
	case errors.Is(err, nodegen.ErrAborted):
		log.Info(err.Error())
		os.Exit(1)
	case err != nil:
		log.Error(err.Error())
		os.Exit(1)
	}
}

func run(out io.Writer) error {
	cfg := nodegen.Config{}

	if configFile != "" {
		raw, err := os.ReadFile(configFile)
		if err != nil {
			return err
		}

		err = yaml.Unmarshal(raw, &cfg)
		if err != nil {
			return fmt.Errorf("cannot parse %s: %w", configFile, err)
		}
	}

	cfg.Destination = directory
	cfg.Force = force
	if appName != "" {
		cfg.Name = appName
	}
	if templateDir != "" {
		cfg.TemplateDirectory = templateDir
	}
	for k, v := range post {
		cfg.Post = append(cfg.Post, map[string]string{k: v})
	}
	cfg.Features = &nodegen.Features{
		Logger:           withLogger,
		JSONParser:       withJSON,
		URLEncodedParser: withURLEnc,
	}

	var g *nodegen.Generator
	var err error

	if engine == "jet" {
		g, err = nodegen.NewJet(cfg, nil)
	} else {
		g, err = nodegen.New(cfg, nil)
	}
	if err != nil {
		return err
	}

	g.Logger(log.Log)
	g.Output(out)

	if dryRun {
		plan, err := g.Plan()
		if err != nil {
			return err
		}

		for _, f := range plan {
			fmt.Fprintf(out, "%s: %s\n", f.Action, filepath.Join(directory, f.Path))
		}

		return nil
	}

	return g.Generate()
}
