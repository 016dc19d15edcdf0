package git_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/shipit/pkg/infra/git"
)

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init", "-b", "main")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "test")

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0644); err != nil {
		t.Fatal(err)
	}
	run("add", "README.md")
	run("commit", "-m", "init")

	return dir
}

func TestClient_IsClean(t *testing.T) {
	ctx := context.Background()
	dir := initRepo(t)
	client := git.New(dir)

	clean, err := client.IsClean(ctx)
	gt.NoError(t, err)
	gt.Value(t, clean).Equal(true)

	if err := os.WriteFile(filepath.Join(dir, "dirty.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	clean, err = client.IsClean(ctx)
	gt.NoError(t, err)
	gt.Value(t, clean).Equal(false)
}

func TestClient_Tags(t *testing.T) {
	ctx := context.Background()
	dir := initRepo(t)
	client := git.New(dir)

	gt.Value(t, client.TagExists(ctx, "v1.0.0")).Equal(false)

	gt.NoError(t, client.CreateTag(ctx, "v1.0.0"))
	gt.Value(t, client.TagExists(ctx, "v1.0.0")).Equal(true)

	// Force-move the major tag onto the release tag
	gt.NoError(t, client.ForceTag(ctx, "v1", "v1.0.0"))
	gt.Value(t, client.TagExists(ctx, "v1")).Equal(true)
	gt.NoError(t, client.ForceTag(ctx, "v1", "v1.0.0"))
}

func TestClient_Commit(t *testing.T) {
	ctx := context.Background()
	dir := initRepo(t)
	client := git.New(dir)

	if err := os.WriteFile(filepath.Join(dir, "CHANGELOG.md"), []byte("# Changelog\n"), 0644); err != nil {
		t.Fatal(err)
	}

	gt.NoError(t, client.Add(ctx, "CHANGELOG.md"))
	gt.NoError(t, client.Commit(ctx, "Release v1.0.0"))

	clean, err := client.IsClean(ctx)
	gt.NoError(t, err)
	gt.Value(t, clean).Equal(true)
}
