// Package pkg provides the libraries behind autolink.
//
// # Overview
//
// Autolink resolves the local dependencies between the packages of a
// monorepo and drives an external package manager to install and link them
// in dependency-safe order. The pkg directory is organized by stage:
//
//  1. [workspace] - Package discovery and package.json loading
//  2. [dag] - Graph construction, cycle detection and ordering
//  3. [pipeline] - Workspace → graph → resolution order
//  4. [orchestrator] - Install, link and clean schedules
//  5. [executor] - Package manager processes
//
// Supporting packages: [io] (snapshot artifact), [render] (DOT/SVG),
// [observability] (schedule hooks), [errors] (coded errors) and [buildinfo].
//
// # Architecture
//
// The data flow of one invocation:
//
//	packages/**/package.json
//	         ↓
//	    [workspace] (discover + validate names)
//	         ↓
//	    [dag] (Build → DetectCycles → Sort)
//	         ↓
//	    [orchestrator] (schedule)
//	         ↓
//	    [executor] (yarn install / yarn link ...)
//
// Every validation error surfaces before the first external command.
//
// # Quick Start
//
//	res, err := pipeline.NewRunner(logger).Resolve(ctx, pipeline.Options{PackagesDir: "packages"})
//	if err != nil {
//	    return err
//	}
//	orch := orchestrator.New(executor.NewProcess("yarn", os.Stdout, os.Stderr), orchestrator.Options{
//	    Artifact: ".autolink",
//	    Logger:   logger,
//	})
//	report, err := orch.Run(ctx, orchestrator.Command{Mode: orchestrator.ModeBootstrap}, res)
//
// [workspace]: github.com/matzehuels/autolink/pkg/workspace
// [dag]: github.com/matzehuels/autolink/pkg/dag
// [pipeline]: github.com/matzehuels/autolink/pkg/pipeline
// [orchestrator]: github.com/matzehuels/autolink/pkg/orchestrator
// [executor]: github.com/matzehuels/autolink/pkg/executor
// [io]: github.com/matzehuels/autolink/pkg/io
// [render]: github.com/matzehuels/autolink/pkg/render
// [observability]: github.com/matzehuels/autolink/pkg/observability
// [errors]: github.com/matzehuels/autolink/pkg/errors
// [buildinfo]: github.com/matzehuels/autolink/pkg/buildinfo
package pkg
