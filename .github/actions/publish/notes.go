// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"text/template"

	"github.com/coreos/go-semver/semver"
	"github.com/fatih/color"
)

//go:embed github.md.tmpl
var githubTmpl string

//go:embed discussions.md.tmpl
var discussionsTmpl string

// generateGithubNotes generates a partially filled out release notes template
// for a Github release and writes it to a file named "github.md". It also
// prints the gh command to create a new draft release with those release
// notes.
func generateGithubNotes(release, previous *semver.Version) {
	const filename = "github.md"

	writeTemplate(
		filename,
		githubTmpl,
		map[string]any{
			"ReleaseVersion":  release.String(),
			"PreviousVersion": previous.String(),
		})

	fmt.Println()
	fmt.Print(
		color.BlueString(`Wrote Github notes template to "`),
		color.GreenString(filename),
		color.BlueString(`".`),
		"\n")
	color.Blue("Fill out any missing information and run the following command to create the Github release:")
	fmt.Println()
	color.Green(
		"\tgh auth refresh && gh release create v%[1]s --verify-tag --draft -R 'schemaver/schemaver-go' -t 'Schemaver %[1]s' -F '%[2]s'",
		release,
		filename)
}

// generateDiscussionsNotes generates a partially filled out announcement
// template for a Github Discussions release post and writes it to a file
// named "discussions.md".
func generateDiscussionsNotes(release *semver.Version) {
	const filename = "discussions.md"

	writeTemplate(
		filename,
		discussionsTmpl,
		map[string]any{
			"ReleaseVersion": release.String(),
		})

	fmt.Println()
	fmt.Print(
		color.BlueString(`Wrote Github Discussions announcement template to "`),
		color.GreenString(filename),
		color.BlueString(`".`),
		"\n")
	color.Blue("Fill out any missing information and paste the contents into a new Announcements discussion:")
	color.Blue("https://github.com/schemaver/schemaver-go/discussions/categories/announcements")
}

func writeTemplate(filename, tmplText string, data any) {
	tmpl, err := template.New(filename).Parse(tmplText)
	if err != nil {
		log.Fatalf("Error creating new template for %q: %v", filename, err)
	}

	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("Error creating file %q: %v", filename, err)
	}
	defer f.Close()

	err = tmpl.Execute(f, data)
	if err != nil {
		log.Fatalf("Error executing template for %q: %v", filename, err)
	}
}

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <release version> <previous version>", os.Args[0])
	}

	release := semver.New(os.Args[1])
	previous := semver.New(os.Args[2])

	generateGithubNotes(release, previous)
	generateDiscussionsNotes(release)
}
