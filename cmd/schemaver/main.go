// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// schemaver parses, compares, bumps, and converts structured version
// numbers from the command line. Extra schemes can be loaded from a YAML
// definitions file with --defs.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/pretty"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/schemaver/schemaver-go/schemaver"
	_ "github.com/schemaver/schemaver-go/schemaver/rubygems"
	"github.com/schemaver/schemaver-go/schemaver/schemafile"
	_ "github.com/schemaver/schemaver-go/schemaver/semverish"
	"github.com/schemaver/schemaver-go/schemaver/standard"
	"github.com/schemaver/schemaver-go/version"
)

var logger zerolog.Logger

func main() {
	app := &cli.App{
		Name:    "schemaver",
		Usage:   "parse, compare, bump, and convert structured version numbers",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: standard.SchemaName,
				Usage: "format the version texts use",
			},
			&cli.StringFlag{
				Name:  "defs",
				Usage: "YAML file with extra scheme definitions",
			},
			&cli.StringFlag{
				Name:  "output",
				Value: "text",
				Usage: "render results as plain text or as a JSON envelope",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			parseCommand(),
			unparseCommand(),
			compareCommand(),
			bumpCommand(),
			resetCommand(),
			convertCommand(),
			sortCommand(),
			schemasCommand(),
		},
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.Run(os.Args); err != nil {
		logger.Fatal().Err(err).Msg("command failed")
	}
}

func setup(c *cli.Context) error {
	level := zerolog.InfoLevel
	if c.Bool("verbose") {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	if path := c.String("defs"); path != "" {
		pack, err := schemafile.Load(path)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		if err := pack.Register(schemaver.DefaultFormatRegistry); err != nil {
			return cli.Exit(err.Error(), 2)
		}
		logger.Debug().Strs("schemes", pack.Names()).Msg("loaded scheme definitions")
	}
	return nil
}

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse a version text and print its fields.",
		ArgsUsage: "<text>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("parse takes exactly one version text", 1)
			}
			v, err := parseArg(c, c.Args().First())
			if err != nil {
				return err
			}
			return printValue(v)
		},
	}
}

func unparseCommand() *cli.Command {
	return &cli.Command{
		Name:      "unparse",
		Usage:     "Render a version from a JSON object of field values.",
		ArgsUsage: `<json>    e.g. '{"major": 1, "minor": 9}'`,
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("unparse takes exactly one JSON object", 1)
			}
			var input map[string]interface{}
			if err := json.Unmarshal([]byte(c.Args().First()), &input); err != nil {
				return cli.Exit(fmt.Sprintf("cannot decode fields: %v", err), 1)
			}
			normalizeNumbers(input)

			f, err := currentFormat(c)
			if err != nil {
				return err
			}
			v, err := schemaver.New(input, f)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			return printResult(c, v)
		},
	}
}

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "Compare two versions; prints -1, 0, or 1.",
		ArgsUsage: "<a> <b>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("compare takes exactly two version texts", 1)
			}
			a, err := parseArg(c, c.Args().Get(0))
			if err != nil {
				return err
			}
			b, err := parseArg(c, c.Args().Get(1))
			if err != nil {
				return err
			}
			cmp, err := a.Compare(b)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			fmt.Println(cmp)
			return nil
		},
	}
}

func bumpCommand() *cli.Command {
	return &cli.Command{
		Name:      "bump",
		Usage:     "Bump a field; fields after it re-derive from defaults.",
		ArgsUsage: "<field> <text>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("bump takes a field name and a version text", 1)
			}
			v, err := parseArg(c, c.Args().Get(1))
			if err != nil {
				return err
			}
			return printResult(c, v.Bump(schemaver.Name(c.Args().Get(0))))
		},
	}
}

func resetCommand() *cli.Command {
	return &cli.Command{
		Name:      "reset",
		Usage:     "Reset a field to its default; fields after it re-derive.",
		ArgsUsage: "<field> <text>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("reset takes a field name and a version text", 1)
			}
			v, err := parseArg(c, c.Args().Get(1))
			if err != nil {
				return err
			}
			return printResult(c, v.Reset(schemaver.Name(c.Args().Get(0))))
		},
	}
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a version to another scheme's format.",
		ArgsUsage: "<text>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "to",
				Usage:    "target format name",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "lossy",
				Usage: "permit dropping fields the target cannot express",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("convert takes exactly one version text", 1)
			}
			v, err := parseArg(c, c.Args().First())
			if err != nil {
				return err
			}
			to, err := lookupFormat(c.String("to"))
			if err != nil {
				return err
			}
			var params map[string]interface{}
			if c.Bool("lossy") {
				params = map[string]interface{}{schemaver.ParamLossy: true}
			}
			converted, err := v.Convert(to, params)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			return printResult(c, converted)
		},
	}
}

func sortCommand() *cli.Command {
	return &cli.Command{
		Name:      "sort",
		Usage:     "Sort versions ascending; without arguments, reads stdin.",
		ArgsUsage: "[texts...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "reverse",
				Aliases: []string{"r"},
				Usage:   "sort descending",
			},
		},
		Action: func(c *cli.Context) error {
			texts := c.Args().Slice()
			if len(texts) == 0 {
				scanner := bufio.NewScanner(os.Stdin)
				for scanner.Scan() {
					if line := strings.TrimSpace(scanner.Text()); line != "" {
						texts = append(texts, line)
					}
				}
				if err := scanner.Err(); err != nil {
					return cli.Exit(err.Error(), 2)
				}
			}

			f, err := currentFormat(c)
			if err != nil {
				return err
			}

			values := make([]*schemaver.Value, len(texts))
			g, _ := errgroup.WithContext(c.Context)
			for i, text := range texts {
				i, text := i, text
				g.Go(func() error {
					v, err := f.Parse(text, nil)
					if err != nil {
						return err
					}
					values[i] = v
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return cli.Exit(err.Error(), 2)
			}

			sort.SliceStable(values, func(a, b int) bool {
				cmp, _ := values[a].Compare(values[b])
				if c.Bool("reverse") {
					return cmp > 0
				}
				return cmp < 0
			})

			for _, v := range values {
				if err := printResult(c, v); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func schemasCommand() *cli.Command {
	return &cli.Command{
		Name:  "schemas",
		Usage: "List the registered formats.",
		Action: func(c *cli.Context) error {
			for _, name := range schemaver.FormatNames() {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func currentFormat(c *cli.Context) (schemaver.Format, error) {
	return lookupFormat(c.String("format"))
}

func lookupFormat(name string) (schemaver.Format, error) {
	f, ok := schemaver.LookupFormat(name)
	if !ok {
		return nil, cli.Exit(fmt.Sprintf("unknown format %q (known: %s)",
			name, strings.Join(schemaver.FormatNames(), ", ")), 1)
	}
	return f, nil
}

func parseArg(c *cli.Context, text string) (*schemaver.Value, error) {
	f, err := currentFormat(c)
	if err != nil {
		return nil, err
	}
	v, err := f.Parse(text, nil)
	if err != nil {
		return nil, cli.Exit(err.Error(), 2)
	}
	return v, nil
}

func printResult(c *cli.Context, v *schemaver.Value) error {
	switch c.String("output") {
	case "json":
		data, err := json.Marshal(v)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		os.Stdout.Write(pretty.Pretty(data))
		return nil
	case "text":
		text, err := v.Unparse(nil)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		fmt.Println(text)
		return nil
	default:
		return cli.Exit(fmt.Sprintf("unknown output mode %q (known: text, json)", c.String("output")), 1)
	}
}

func printValue(v *schemaver.Value) error {
	type field struct {
		Name  string      `json:"name"`
		Value interface{} `json:"value"`
	}
	names := v.FieldNames()
	values := v.Values()
	fields := make([]field, len(names))
	for i := range names {
		fields[i] = field{Name: names[i], Value: values[i]}
	}

	text, err := v.Unparse(nil)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	doc := struct {
		Schema string  `json:"schema"`
		Text   string  `json:"text"`
		Fields []field `json:"fields"`
	}{v.Schema().Name(), text, fields}

	data, err := json.Marshal(doc)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	os.Stdout.Write(pretty.Pretty(data))
	return nil
}

// normalizeNumbers rewrites integral JSON numbers as ints, which is what
// integer fields canonicalize from.
func normalizeNumbers(input map[string]interface{}) {
	for k, v := range input {
		if f, ok := v.(float64); ok && f == math.Trunc(f) {
			input[k] = int(f)
		}
	}
}
