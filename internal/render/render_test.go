package render

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"gitprompt/internal/promptconfig"
	"gitprompt/internal/repo"
)

func newTestRepo(t *testing.T) (*git.Repository, *git.Worktree, string) {
	t.Helper()
	dir := t.TempDir()
	r, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := r.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	return r, wt, dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func commit(t *testing.T, wt *git.Worktree, paths []string, msg string) plumbing.Hash {
	t.Helper()
	for _, p := range paths {
		if _, err := wt.Add(p); err != nil {
			t.Fatalf("add %s: %v", p, err)
		}
	}
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()}
	hash, err := wt.Commit(msg, &git.CommitOptions{Author: sig})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return hash
}

func handleFor(t *testing.T, dir string) *repo.Handle {
	t.Helper()
	h, ok := repo.Probe(dir)
	if !ok {
		t.Fatalf("Probe(%s) failed", dir)
	}
	return h
}

// Scenario 1: fresh repository, no commits yet, empty working tree.
func TestScenario_FreshRepoEmpty(t *testing.T) {
	_, _, dir := newTestRepo(t)
	got := Render(promptconfig.DefaultDocument(), handleFor(t, dir))
	if got != "master" {
		t.Fatalf("Render = %q, want %q", got, "master")
	}
}

// Scenario 2: fresh repository with one untracked file.
func TestScenario_FreshRepoUntracked(t *testing.T) {
	_, _, dir := newTestRepo(t)
	writeFile(t, dir, "file.txt", "hello\n")
	got := Render(promptconfig.DefaultDocument(), handleFor(t, dir))
	if want := "master│✚1"; got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

// Scenario 3: fresh repository with file.txt staged, not yet committed.
func TestScenario_FreshRepoStaged(t *testing.T) {
	_, wt, dir := newTestRepo(t)
	writeFile(t, dir, "file.txt", "hello\n")
	if _, err := wt.Add("file.txt"); err != nil {
		t.Fatalf("add: %v", err)
	}
	got := Render(promptconfig.DefaultDocument(), handleFor(t, dir))
	if want := "master│▶1"; got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

// Scenario 4: one commit, no modifications.
func TestScenario_CleanRepo(t *testing.T) {
	_, wt, dir := newTestRepo(t)
	writeFile(t, dir, "file.txt", "hello\n")
	commit(t, wt, []string{"file.txt"}, "initial")

	got := Render(promptconfig.DefaultDocument(), handleFor(t, dir))
	if got != "master" {
		t.Fatalf("Render = %q, want %q", got, "master")
	}
}

// Scenario 5: one commit, file.txt modified in worktree, not staged.
func TestScenario_UnstagedModification(t *testing.T) {
	_, wt, dir := newTestRepo(t)
	writeFile(t, dir, "file.txt", "v1\n")
	commit(t, wt, []string{"file.txt"}, "initial")
	writeFile(t, dir, "file.txt", "v2\n")

	got := Render(promptconfig.DefaultDocument(), handleFor(t, dir))
	if want := "master│Δ1"; got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

// Scenario 6: repository pushed to origin, then one additional local commit.
func TestScenario_Ahead(t *testing.T) {
	r, wt, dir := newTestRepo(t)
	writeFile(t, dir, "file.txt", "v1\n")
	base := commit(t, wt, []string{"file.txt"}, "base")
	writeFile(t, dir, "file.txt", "v2\n")
	commit(t, wt, []string{"file.txt"}, "ahead")
	setUpstream(t, r, "master", base)

	got := Render(promptconfig.DefaultDocument(), handleFor(t, dir))
	if want := "master↑1"; got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

// Scenario 7: origin/master has one commit the local does not.
func TestScenario_Behind(t *testing.T) {
	r, wt, dir := newTestRepo(t)
	writeFile(t, dir, "file.txt", "v1\n")
	commit(t, wt, []string{"file.txt"}, "base")

	ahead := cloneCommit(t, r, wt, "file.txt", "v2\n")
	setUpstream(t, r, "master", ahead)

	got := Render(promptconfig.DefaultDocument(), handleFor(t, dir))
	if want := "master↓1"; got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

// Scenario 8: detached HEAD one commit behind tip.
func TestScenario_Detached(t *testing.T) {
	_, wt, dir := newTestRepo(t)
	writeFile(t, dir, "file.txt", "v1\n")
	first := commit(t, wt, []string{"file.txt"}, "first")
	writeFile(t, dir, "file.txt", "v2\n")
	commit(t, wt, []string{"file.txt"}, "second")
	if err := wt.Checkout(&git.CheckoutOptions{Hash: first}); err != nil {
		t.Fatalf("checkout: %v", err)
	}

	got := Render(promptconfig.DefaultDocument(), handleFor(t, dir))
	if want := first.String()[:7]; got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

// Scenario 9 (merge and ahead halves): in-progress merge with one local
// ahead-commit. go-git cannot itself produce a conflicted index (it has no
// merge implementation), so the conflicts marker half of the scenario is
// not exercised here; this test covers the LeafMerge/Name coexistence the
// scenario is really probing.
func TestScenario_Merge(t *testing.T) {
	r, wt, dir := newTestRepo(t)
	writeFile(t, dir, "file.txt", "v1\n")
	base := commit(t, wt, []string{"file.txt"}, "base")
	writeFile(t, dir, "file.txt", "v2\n")
	commit(t, wt, []string{"file.txt"}, "ahead")
	setUpstream(t, r, "master", base)

	mergeHead := filepath.Join(dir, ".git", "MERGE_HEAD")
	if err := os.WriteFile(mergeHead, []byte(base.String()+"\n"), 0o644); err != nil {
		t.Fatalf("write MERGE_HEAD: %v", err)
	}

	got := Render(promptconfig.DefaultDocument(), handleFor(t, dir))
	if want := "merge│master↑1"; got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

// Scenario 10: one stashed change on an otherwise clean repository.
func TestScenario_Stashed(t *testing.T) {
	_, wt, dir := newTestRepo(t)
	writeFile(t, dir, "file.txt", "v1\n")
	head := commit(t, wt, []string{"file.txt"}, "initial")

	stashLog := filepath.Join(dir, ".git", "logs", "refs", "stash")
	if err := os.MkdirAll(filepath.Dir(stashLog), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	line := "0000000000000000000000000000000000000000 " + head.String() + " Test <test@example.com> 1700000000 +0000\tWIP on master\n"
	if err := os.WriteFile(stashLog, []byte(line), 0o644); err != nil {
		t.Fatalf("write stash log: %v", err)
	}

	got := Render(promptconfig.DefaultDocument(), handleFor(t, dir))
	if want := "master│☐1"; got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

// Scenario 11: two always separators around nothing.
func TestScenario_AlwaysSeparatorsAroundNothing(t *testing.T) {
	doc := &promptconfig.Document{
		Version: "1",
		Root: promptconfig.GroupNode{Children: []promptconfig.Node{
			promptconfig.SeparatorNode{Display: promptconfig.DisplayAlways, Pre: "("},
			promptconfig.SeparatorNode{Display: promptconfig.DisplayAlways, Pre: ")"},
		}},
	}
	got := Render(doc, nil)
	if got != "()" {
		t.Fatalf("Render = %q, want %q", got, "()")
	}
}

// Scenario 12: surrounded separators around a remote_difference whose remote
// ref is absent, display_if_uptodate: false.
func TestScenario_SurroundedAroundAbsentRemoteDifference(t *testing.T) {
	_, wt, dir := newTestRepo(t)
	writeFile(t, dir, "file.txt", "v1\n")
	commit(t, wt, []string{"file.txt"}, "initial")

	doc := &promptconfig.Document{
		Version: "1",
		Root: promptconfig.GroupNode{Children: []promptconfig.Node{
			promptconfig.SeparatorNode{Display: promptconfig.DisplaySurrounded, Pre: "("},
			promptconfig.RemoteDifferenceNode{
				DisplayIfUpToDate: false,
				Children: []promptconfig.Node{
					promptconfig.LeafNode{Kind: promptconfig.LeafAhead, Pre: "+"},
				},
			},
			promptconfig.SeparatorNode{Display: promptconfig.DisplaySurrounded, Pre: ")"},
		}},
	}
	got := Render(doc, handleFor(t, dir))
	if got != "" {
		t.Fatalf("Render = %q, want empty string", got)
	}
}

func TestSeparatorResolution_Idempotent(t *testing.T) {
	frags := []fragment{
		{kind: fragSeparator, display: promptconfig.DisplaySurrounded, text: "|"},
		{kind: fragValue, emitted: true, text: "a"},
		{kind: fragSeparator, display: promptconfig.DisplaySurrounded, text: "|"},
	}
	first := resolveSeparators(frags)
	again := resolveSeparators([]fragment{{kind: fragValue, emitted: true, text: first}})
	if again != first {
		t.Fatalf("resolving twice changed the output: %q vs %q", first, again)
	}
}

func TestRender_AllSurroundedOverAllZero_IsEmpty(t *testing.T) {
	_, wt, dir := newTestRepo(t)
	writeFile(t, dir, "file.txt", "v1\n")
	commit(t, wt, []string{"file.txt"}, "initial")

	doc := &promptconfig.Document{
		Version: "1",
		Root: promptconfig.GroupNode{Children: []promptconfig.Node{
			promptconfig.SeparatorNode{Display: promptconfig.DisplaySurrounded, Pre: "|"},
			promptconfig.LeafNode{Kind: promptconfig.LeafStashed, Pre: "☐"},
			promptconfig.SeparatorNode{Display: promptconfig.DisplaySurrounded, Pre: "|"},
		}},
	}
	got := Render(doc, handleFor(t, dir))
	if got != "" {
		t.Fatalf("Render = %q, want empty string", got)
	}
}

func setUpstream(t *testing.T, r *git.Repository, branch string, remoteHash plumbing.Hash) {
	t.Helper()
	cfg, err := r.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	cfg.Remotes["origin"] = &gitconfig.RemoteConfig{Name: "origin", URLs: []string{"https://example.invalid/repo.git"}}
	cfg.Branches[branch] = &gitconfig.Branch{Name: branch, Remote: "origin", Merge: plumbing.NewBranchReferenceName(branch)}
	if err := r.Storer.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	if err := r.Storer.SetReference(plumbing.NewHashReference(plumbing.NewRemoteReferenceName("origin", branch), remoteHash)); err != nil {
		t.Fatalf("SetReference: %v", err)
	}
}

// cloneCommit records one additional commit into r's object store (reusing
// the same worktree) and returns its hash, without moving the local branch
// tip, to stand in for a commit that exists only on the remote.
func cloneCommit(t *testing.T, r *git.Repository, wt *git.Worktree, name, content string) plumbing.Hash {
	t.Helper()
	head, err := r.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	writeFile(t, wt.Filesystem.Root(), name, content)
	hash := commit(t, wt, []string{name}, "remote-only")

	// Move the branch back to its original tip so the new commit is only
	// reachable via the remote-tracking ref, mirroring "origin is ahead".
	if err := r.Storer.SetReference(plumbing.NewHashReference(head.Name(), head.Hash())); err != nil {
		t.Fatalf("reset branch: %v", err)
	}
	if err := wt.Reset(&git.ResetOptions{Commit: head.Hash(), Mode: git.HardReset}); err != nil {
		t.Fatalf("reset worktree: %v", err)
	}
	return hash
}
