// Command scenekit is the developer tool for prefab/scene definition
// files: canonical reformatting, schema-aware checking, and test
// instantiation into the in-memory world.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/lixenwraith/scenekit/engine"
	"github.com/lixenwraith/scenekit/prefab"
	"github.com/lixenwraith/scenekit/scene"
	"github.com/lixenwraith/scenekit/schema"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: scenekit <command> [flags] <file>

commands:
  fmt     parse a definition file and print its canonical form
  check   parse and validate against a component schema
  spawn   instantiate into an in-memory world and dump live entities

flags:
  -schema <file>   YAML component layout definitions (check, spawn)
  -v               verbose logging
`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	cmd := os.Args[1]

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	schemaPath := fs.String("schema", "", "YAML component layout definitions")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Parse(os.Args[2:])

	if fs.NArg() != 1 {
		usage()
	}
	path := fs.Arg(0)

	log := zap.NewNop()
	if *verbose {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			fatal(err)
		}
	}
	defer log.Sync()

	switch cmd {
	case "fmt":
		runFmt(path)
	case "check":
		runCheck(path, *schemaPath)
	case "spawn":
		runSpawn(path, *schemaPath, log)
	default:
		usage()
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "scenekit:", err)
	os.Exit(1)
}

func parseFile(path string) ([]*prefab.Prefab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Prefab files hold a single template; anything else is treated
	// as a scene with one or more roots
	if filepath.Ext(path) == ".prefab" {
		root, err := prefab.Parse(path, data)
		if err != nil {
			return nil, err
		}
		return []*prefab.Prefab{root}, nil
	}
	return prefab.ParseScene(path, data)
}

func loadSchema(path string) (*schema.Registry, error) {
	reg := schema.NewRegistry()
	if path == "" {
		return reg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := schema.RegisterDefs(reg, data); err != nil {
		return nil, err
	}
	return reg, nil
}

func runFmt(path string) {
	roots, err := parseFile(path)
	if err != nil {
		fatal(err)
	}
	fmt.Print(prefab.WriteScene(roots))
}

func runCheck(path, schemaPath string) {
	roots, err := parseFile(path)
	if err != nil {
		fatal(err)
	}
	reg, err := loadSchema(schemaPath)
	if err != nil {
		fatal(err)
	}

	warnings := 0
	if reg.Count() > 0 {
		for _, root := range roots {
			for _, warn := range schema.Validate(reg, root) {
				fmt.Fprintf(os.Stderr, "%s: warning: %s\n", path, warn)
				warnings++
			}
		}
	}
	fmt.Printf("%s: %d root(s), %d warning(s)\n", path, len(roots), warnings)
	if warnings > 0 {
		os.Exit(1)
	}
}

func runSpawn(path, schemaPath string, log *zap.Logger) {
	if schemaPath == "" {
		fatal(fmt.Errorf("spawn requires -schema"))
	}
	reg, err := loadSchema(schemaPath)
	if err != nil {
		fatal(err)
	}

	prefabs := prefab.NewRegistry()
	mgr := scene.NewManager(reg, prefabs, log)

	s, err := mgr.Load(path)
	if err != nil {
		fatal(err)
	}

	world := engine.NewMemoryWorld()
	var diag engine.Diagnostics
	if err := mgr.Instantiate(s, world, &diag); err != nil {
		fatal(err)
	}
	for _, warn := range diag.Warnings {
		fmt.Fprintf(os.Stderr, "%s: warning: %s\n", path, warn)
	}

	fmt.Printf("# %d entities\n", world.EntityCount())
	for _, root := range s.RootEntities() {
		fmt.Print(engine.WriteEntity(world, reg, root))
	}
}
