// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/bitfield/script"
	"github.com/coreos/go-semver/semver"
	"github.com/urfave/cli/v2"
)

const (
	versionFile      = "version/version.go"
	prereleaseSuffix = "-prerelease"
	remote           = "origin"
	minorBaseBranch  = "main"
)

func releaseMinor(version *semver.Version) {
	if version.Patch != 0 {
		log.Fatalf("Expected minor version to have patch version 0, but got %d", version.Patch)
	}

	requireCleanTree()

	if branch := strings.TrimSpace(exec("git branch --show-current")); branch != minorBaseBranch {
		log.Fatalf("Current branch must be %q, but is %q", minorBaseBranch, branch)
	}

	// Create the new release branch.
	releaseBranch := fmt.Sprintf("release/%d.%d", version.Major, version.Minor)
	execf("git checkout -b %s", releaseBranch)

	cutRelease(version, releaseBranch)
}

func releasePatch(version *semver.Version) {
	if version.Patch == 0 {
		log.Fatal("Expected patch version to have non-zero patch version")
	}

	requireCleanTree()

	// Patch releases are cut from the release branch of their minor line.
	releaseBranch := fmt.Sprintf("release/%d.%d", version.Major, version.Minor)
	if branch := strings.TrimSpace(exec("git branch --show-current")); branch != releaseBranch {
		log.Fatalf("Current branch must be %q, but is %q", releaseBranch, branch)
	}

	cutRelease(version, releaseBranch)
}

// cutRelease rewrites version/version.go from the prerelease tag to the
// release tag, commits and signs the tag, then moves version/version.go to
// the next patch prerelease.
func cutRelease(version *semver.Version, releaseBranch string) {
	// Check that version.go has the expected prerelease version.
	prerelease := semver.New(version.String() + prereleaseSuffix)
	if must(script.File(versionFile).Match(prerelease.String()).String()) == "" {
		log.Fatalf(
			"Expected version/version.go to contain version %q, but it does not.",
			prerelease)
	}

	// Update the release version in version.go and commit the change.
	log.Printf("Updating version in %q from %q to %q", versionFile, prerelease, version)
	contents := must(script.File(versionFile).Replace(prerelease.String(), version.String()).String())
	must(script.Echo(contents).WriteFile(versionFile))
	execf("git add %s", versionFile)
	execf(`git commit -m "Update version to v%s"`, version.String())

	// Tag the release commit.
	releaseTag := fmt.Sprintf("v%s", version)
	execf(`git tag -s %[1]s -m "%[1]s"`, releaseTag)

	// Update the release version in version.go to the next patch prerelease
	// tag and commit the change.
	nextPatchPrerelease := semver.New(fmt.Sprintf(
		"%d.%d.%d%s",
		version.Major,
		version.Minor,
		version.Patch+1,
		prereleaseSuffix))
	log.Printf("Updating version in %q from %q to %q", versionFile, version, nextPatchPrerelease)
	contents = must(script.File(versionFile).Replace(version.String(), nextPatchPrerelease.String()).String())
	must(script.Echo(contents).WriteFile(versionFile))
	execf("git add %s", versionFile)
	execf(`git commit -m "Update version to v%s"`, nextPatchPrerelease)

	log.Printf(
		`Done! Run the following commands to persist the release to the remote:
	git push %[1]s %s
	git push %[1]s %s`,
		remote,
		releaseBranch,
		releaseTag)
}

// requireCleanTree exits if there are any changes, staged or unstaged.
func requireCleanTree() {
	exec("git diff --quiet --exit-code")
	exec("git diff --quiet --exit-code --cached")
}

// execf assembles and runs the given shell command and returns any printed
// shell output. It exits if the command exits with a non-zero exit code.
func execf(format string, a ...any) string {
	return exec(fmt.Sprintf(format, a...))
}

// exec runs the given shell command and returns any printed shell output. It
// exits if the command exits with a non-zero exit code.
func exec(command string) string {
	log.Print(command)
	out := must(script.Exec(command).String())
	if out != "" {
		log.Print(out)
	}
	return out
}

func must[T any](x T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return x
}

func releaseAction(release func(*semver.Version)) cli.ActionFunc {
	return func(c *cli.Context) error {
		version := strings.TrimSpace(c.Args().First())
		if version == "" {
			return errors.New("must specify a version to release")
		}

		// The semver package expects the version to only contain numbers
		// and periods, so strip a leading "v". It is re-added when the
		// release tag is built.
		if version[0] == 'v' {
			version = version[1:]
		}

		release(semver.New(version))
		return nil
	}
}

func main() {
	app := &cli.App{
		Name:  "Schemaver releaser.",
		Usage: "release patch v1.2.3",
		Commands: []*cli.Command{
			{
				Name:   "minor",
				Usage:  "Release a minor version.",
				Action: releaseAction(releaseMinor),
			},
			{
				Name:   "patch",
				Usage:  "Release a patch version.",
				Action: releaseAction(releasePatch),
			},
		},
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
