package filetree

import (
	"bytes"
	"strings"
	"testing"
)

func render(t *testing.T, root *Node) string {
	t.Helper()
	var buf bytes.Buffer
	Render(&buf, root)
	return buf.String()
}

func TestEmptyTreePrintsOnlyRootMarker(t *testing.T) {
	root := New()

	got := render(t, root)
	if got != ".\n" {
		t.Errorf("Expected only the root marker, got %q", got)
	}
}

func TestSiblingsRenderInSortedOrder(t *testing.T) {
	root := New()
	// Inserted deliberately out of order
	root.Insert("b")
	root.Insert("a")
	root.Insert("c")

	expected := strings.Join([]string{
		".",
		"├── a",
		"├── b",
		"└── c",
		"",
	}, "\n")

	if got := render(t, root); got != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, got)
	}
}

func TestSharedPrefixCollapses(t *testing.T) {
	root := New()
	root.Insert("usr/bin/a")
	root.Insert("usr/bin/b")

	if root.Len() != 1 {
		t.Fatalf("Expected a single top-level node, got %d", root.Len())
	}

	usr := root.Child("usr")
	if usr == nil || usr.Len() != 1 {
		t.Fatalf("Expected exactly one child under usr")
	}

	bin := usr.Child("bin")
	if bin == nil || bin.Len() != 2 {
		t.Fatalf("Expected two leaves under usr/bin")
	}

	for _, name := range []string{"a", "b"} {
		leaf := bin.Child(name)
		if leaf == nil {
			t.Errorf("Missing leaf %q under usr/bin", name)
		} else if leaf.Len() != 0 {
			t.Errorf("Leaf %q should have no children", name)
		}
	}
}

func TestInsertIsIdempotent(t *testing.T) {
	paths := []string{"usr/bin/foo", "usr/share/doc/foo/README", "etc/foo.conf"}

	once := New()
	once.InsertAll(paths)

	twice := New()
	twice.InsertAll(paths)
	twice.InsertAll(paths)

	if got, want := render(t, twice), render(t, once); got != want {
		t.Errorf("Double insertion changed the tree.\nOnce:\n%s\nTwice:\n%s", want, got)
	}
}

func TestLeadingSlashesAndEmptyComponentsSkipped(t *testing.T) {
	root := New()
	root.Insert("/usr/bin/foo")
	root.Insert("usr//bin/foo/")

	if root.Len() != 1 || root.Child("usr") == nil {
		t.Fatalf("Expected absolute and doubled-slash paths to normalize to the same node")
	}

	bin := root.Child("usr").Child("bin")
	if bin == nil || bin.Len() != 1 || bin.Child("foo") == nil {
		t.Errorf("Expected a single foo leaf under usr/bin")
	}
}

func TestConnectorsAndContinuationPrefixes(t *testing.T) {
	root := New()
	root.InsertAll([]string{
		"etc/hosts",
		"usr/bin/a",
		"usr/bin/b",
		"usr/share/doc/x",
		"var/log",
	})

	expected := strings.Join([]string{
		".",
		"├── etc",
		"│   └── hosts",
		"├── usr",
		"│   ├── bin",
		"│   │   ├── a",
		"│   │   └── b",
		"│   └── share",
		"│       └── doc",
		"│           └── x",
		"└── var",
		"    └── log",
		"",
	}, "\n")

	if got := render(t, root); got != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, got)
	}
}

func TestLastSiblingDescendantsUseBlankPrefix(t *testing.T) {
	root := New()
	root.InsertAll([]string{"a/x", "b/y/z"})

	got := render(t, root)

	if !strings.Contains(got, "    └── y") {
		t.Errorf("Descendants of the last sibling should be indented with spaces, got:\n%s", got)
	}
	if !strings.Contains(got, "│   └── x") {
		t.Errorf("Descendants of a non-last sibling should keep the vertical bar, got:\n%s", got)
	}
}

func TestNamesSorted(t *testing.T) {
	root := New()
	root.InsertAll([]string{"zsh", "awk", "med"})

	names := root.Names()
	want := []string{"awk", "med", "zsh"}
	if len(names) != len(want) {
		t.Fatalf("Expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
