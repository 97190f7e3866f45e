package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"framediff/internal/archive"
	"framediff/internal/query"
)

func TestTargetsAndBuilds(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"targets"}, env.configPath)
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	requireContains(t, out, "linux")

	out, _, err = runCLI(t, []string{"--json", "builds", "linux"}, env.configPath)
	if err != nil {
		t.Fatalf("builds: %v", err)
	}
	var builds []string
	if err := json.Unmarshal([]byte(out), &builds); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Join(builds, ",") != "2,1" {
		t.Fatalf("expected newest build first, got %v", builds)
	}
}

func TestBuildsUnknownTarget(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"builds", "nope"}, env.configPath)
	if !errors.Is(err, archive.ErrTargetNotFound) {
		t.Fatalf("expected ErrTargetNotFound, got %v", err)
	}
}

func TestTargetMatrix(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"target", "linux"}, env.configPath)
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	requireContains(t, out, "Partial-Changed")
	requireContains(t, out, "First-Seen")
	requireContains(t, out, "menu")
}

func TestTargetMatrixJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--json", "target", "linux"}, env.configPath)
	if err != nil {
		t.Fatalf("target --json: %v", err)
	}
	var view query.TargetView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(view.Builds) != 2 || view.Builds[0] != "2" {
		t.Fatalf("unexpected builds %v", view.Builds)
	}
	if view.QueryID == "" {
		t.Fatal("expected query id")
	}
}

func TestBuildView(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"build", "linux", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	requireContains(t, out, "linux / 2 vs 1")
	requireContains(t, out, "1 changed")
}

func TestMovieAcrossTargets(t *testing.T) {
	env := setupCLITestEnv(t)
	env.archive.Frame("mac", "1", "intro-1.png", white)

	out, _, err := runCLI(t, []string{"movie", "intro"}, env.configPath)
	if err != nil {
		t.Fatalf("movie: %v", err)
	}
	requireContains(t, out, "linux")
	requireContains(t, out, "mac")

	out, _, err = runCLI(t, []string{"movie", "credits"}, env.configPath)
	if err != nil {
		t.Fatalf("movie credits: %v", err)
	}
	requireContains(t, out, "not found")
}

func TestFrames(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--json", "frames", "linux", "intro"}, env.configPath)
	if err != nil {
		t.Fatalf("frames: %v", err)
	}
	var view query.MovieFrames
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.Frames) != 2 || view.Frames[0].Frame != 1 || len(view.Frames[0].Builds) != 2 {
		t.Fatalf("unexpected frames %+v", view.Frames)
	}
}
