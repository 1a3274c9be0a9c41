package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// setupTestEnv creates a bare remote with a tracking dotfiles clone
// and points DOTR_DIR plus the XDG directories at temp space, so the
// commands under test read and write only throwaway state.
func setupTestEnv(t *testing.T) (local, remote string) {
	t.Helper()

	base := t.TempDir()
	remote = filepath.Join(base, "dotfiles.git")
	local = filepath.Join(base, "dotfiles")

	testGit(t, base, "init", "--bare", "-b", "main", remote)
	testGit(t, base, "clone", remote, local)
	testGit(t, local, "config", "user.email", "test@example.com")
	testGit(t, local, "config", "user.name", "Test User")

	writeTestFile(t, filepath.Join(local, "zshrc"), "alias ll='ls -la'\n")
	testGit(t, local, "add", "zshrc")
	testGit(t, local, "commit", "-m", "initial commit")
	testGit(t, local, "push", "-u", "origin", "main")

	t.Setenv("DOTR_DIR", local)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "cache"))

	return local, remote
}

// advanceTestRemote adds a commit to the remote through a second clone.
func advanceTestRemote(t *testing.T, remote string, files ...string) {
	t.Helper()

	dir := t.TempDir()
	clone := filepath.Join(dir, "clone")

	testGit(t, dir, "clone", remote, clone)
	testGit(t, clone, "config", "user.email", "test@example.com")
	testGit(t, clone, "config", "user.name", "Test User")

	for _, name := range files {
		writeTestFile(t, filepath.Join(clone, name), name+" content\n")
		testGit(t, clone, "add", name)
	}

	testGit(t, clone, "commit", "-m", "update "+files[0])
	testGit(t, clone, "push", "origin", "main")
}

func headCommit(t *testing.T, repoDir string) string {
	t.Helper()

	out := exec.Command("git", "rev-parse", "HEAD")
	out.Dir = repoDir

	data, err := out.Output()
	if err != nil {
		t.Fatalf("failed to resolve HEAD: %v", err)
	}

	return string(data)
}

func notificationPath(t *testing.T) string {
	t.Helper()

	return filepath.Join(os.Getenv("XDG_CACHE_HOME"), "dotr", "update-available")
}

func testGit(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, output)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
