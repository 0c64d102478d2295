package category

import "testing"

func TestForExtension(t *testing.T) {
	cases := []struct {
		ext  string
		want Category
	}{
		{".pdf", Documents},
		{".PDF", Documents},
		{"pdf", Documents},
		{".jpeg", Images},
		{".mkv", Videos},
		{".flac", Audio},
		{".tgz", Archives},
		{".go", Code},
		{".dmg", Installers},
		{".xyz", Other},
		{"", Other},
	}
	for _, tc := range cases {
		if got := ForExtension(tc.ext); got != tc.want {
			t.Errorf("ForExtension(%q) = %s, want %s", tc.ext, got, tc.want)
		}
	}
}

func TestForFile(t *testing.T) {
	if got := ForFile("/downloads/report.PDF"); got != Documents {
		t.Fatalf("ForFile = %s, want Documents", got)
	}
	if got := ForFile("/downloads/README"); got != Other {
		t.Fatalf("ForFile without extension = %s, want Other", got)
	}
}

func TestParse(t *testing.T) {
	cat, ok := Parse("documents")
	if !ok || cat != Documents {
		t.Fatalf("Parse(documents) = %s, %v", cat, ok)
	}
	if _, ok := Parse("movies"); ok {
		t.Fatal("Parse(movies) should not match a known category")
	}
	if cat, ok := Parse(" OTHER "); !ok || cat != Other {
		t.Fatalf("Parse(OTHER) = %s, %v", cat, ok)
	}
}

func TestExtensionSetsDoNotOverlap(t *testing.T) {
	seen := make(map[string]Category)
	for _, cat := range All() {
		for _, ext := range cat.Extensions() {
			if prev, ok := seen[ext]; ok {
				t.Errorf("extension %s claimed by both %s and %s", ext, prev, cat)
			}
			seen[ext] = cat
		}
	}
}

func TestFolderName(t *testing.T) {
	if got := Documents.FolderName(); got != "~Documents" {
		t.Fatalf("FolderName = %q, want ~Documents", got)
	}
}
