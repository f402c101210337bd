package seen

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadWriteURNs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "urns.json")

	urns := []string{"urn:li:jobPosting:1", "urn:li:jobPosting:2"}
	if err := WriteURNs(path, urns); err != nil {
		t.Fatalf("WriteURNs() error = %v", err)
	}

	got, err := ReadURNs(path)
	if err != nil {
		t.Fatalf("ReadURNs() error = %v", err)
	}
	if !reflect.DeepEqual(got, urns) {
		t.Fatalf("ReadURNs() = %#v, want %#v", got, urns)
	}
}

func TestReadURNsAllowMissing(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.json")

	got, err := ReadURNsAllowMissing(missing)
	if err != nil {
		t.Fatalf("ReadURNsAllowMissing() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty history for missing file, got %d", len(got))
	}
}

func TestReadURNsRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`"urn:li:jobPosting:1"`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := ReadURNsAllowMissing(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestReadURNsFromSearchResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	data := `{"status":"success","url_requested":"u","total_urns_found":2,"urns":["urn:li:jobPosting:1","urn:li:jobPosting:2"]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ReadURNs(path)
	if err != nil {
		t.Fatalf("ReadURNs() error = %v", err)
	}
	want := []string{"urn:li:jobPosting:1", "urn:li:jobPosting:2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ReadURNs() = %#v, want %#v", got, want)
	}
}
