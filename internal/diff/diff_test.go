package diff

import (
	"testing"

	"github.com/aezell/branchkit/internal/model"
)

const sampleDiff = `diff --git a/hello.go b/hello.go
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/hello.go
@@ -0,0 +1,11 @@
+package main
+
+import "fmt"
+
+func main() {
+	fmt.Println("hello")
+}
+
+func add(a, b int) int {
+	return a + b
+}
diff --git a/readme.md b/readme.md
index abc1234..def5678 100644
--- a/readme.md
+++ b/readme.md
@@ -1,3 +1,4 @@
 # Project

-Old description
+New description
+Added line
`

const renameDeleteDiff = `diff --git a/app/models/old.rb b/app/models/new.rb
similarity index 100%
rename from app/models/old.rb
rename to app/models/new.rb
diff --git a/config/legacy.yml b/config/legacy.yml
deleted file mode 100644
index abc1234..0000000
--- a/config/legacy.yml
+++ /dev/null
@@ -1,2 +0,0 @@
-a: 1
-b: 2
`

func TestParse(t *testing.T) {
	ds, err := Parse(sampleDiff)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ds.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(ds.Files))
	}

	f0 := ds.Files[0]
	if !f0.IsNew {
		t.Error("expected hello.go to be new")
	}
	if f0.Name() != "hello.go" {
		t.Errorf("expected name 'hello.go', got %q", f0.Name())
	}
	if f0.AddedLines != 11 {
		t.Errorf("expected 11 added lines, got %d", f0.AddedLines)
	}

	f1 := ds.Files[1]
	if f1.Name() != "readme.md" {
		t.Errorf("expected name 'readme.md', got %q", f1.Name())
	}
	if f1.AddedLines != 2 || f1.DeletedLines != 1 {
		t.Errorf("expected +2/-1, got +%d/-%d", f1.AddedLines, f1.DeletedLines)
	}

	files, added, deleted := ds.Stats()
	if files != 2 || added != 13 || deleted != 1 {
		t.Errorf("stats: got %d files +%d -%d", files, added, deleted)
	}
}

func TestParseEmpty(t *testing.T) {
	ds, err := Parse("")
	if err != nil {
		t.Fatalf("Parse empty failed: %v", err)
	}
	if len(ds.Files) != 0 {
		t.Errorf("expected 0 files, got %d", len(ds.Files))
	}
	if !ds.ChangeSet().Empty() {
		t.Error("expected empty change set")
	}
}

func TestChangeSet(t *testing.T) {
	ds, err := Parse(sampleDiff + renameDeleteDiff)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	set := ds.ChangeSet()
	entries := set.Entries()
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	want := []struct {
		path     string
		status   model.ChangeStatus
		category model.Category
	}{
		{"hello.go", model.StatusAdded, model.CategoryDomainLogic},
		{"readme.md", model.StatusModified, model.CategoryDocumentation},
		{"app/models/new.rb", model.StatusRenamed, model.CategoryDomainLogic},
		{"config/legacy.yml", model.StatusDeleted, model.CategoryConfiguration},
	}
	for i, w := range want {
		e := entries[i]
		if e.Path != w.path || e.Status != w.status || e.Category != w.category {
			t.Errorf("entry %d = {%s %s %s}, want {%s %s %s}",
				i, e.Path, e.Status, e.Category, w.path, w.status, w.category)
		}
	}
	if entries[2].OldPath != "app/models/old.rb" {
		t.Errorf("expected rename source to be kept, got %q", entries[2].OldPath)
	}
}
