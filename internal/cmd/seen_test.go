package cmd

import (
	"bytes"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jimezsa/urnscraper/internal/seen"
)

func TestSeenDiffAndUpdate(t *testing.T) {
	dir := t.TempDir()
	newPath := filepath.Join(dir, "new.json")
	seenPath := filepath.Join(dir, "seen.json")
	outPath := filepath.Join(dir, "unseen.json")

	if err := seen.WriteURNs(newPath, []string{"urn:li:jobPosting:1", "urn:li:jobPosting:2"}); err != nil {
		t.Fatalf("WriteURNs() error = %v", err)
	}
	if err := seen.WriteURNs(seenPath, []string{"urn:li:jobPosting:2"}); err != nil {
		t.Fatalf("WriteURNs() error = %v", err)
	}

	var out bytes.Buffer
	ctx := testContext()
	ctx.Out = &out

	diff := &SeenDiffCmd{New: newPath, Seen: seenPath, Out: outPath, Stats: true}
	if err := diff.Run(ctx); err != nil {
		t.Fatalf("SeenDiffCmd.Run() error = %v", err)
	}
	unseen, err := seen.ReadURNs(outPath)
	if err != nil {
		t.Fatalf("ReadURNs() error = %v", err)
	}
	if want := []string{"urn:li:jobPosting:1"}; !reflect.DeepEqual(unseen, want) {
		t.Fatalf("unseen = %#v, want %#v", unseen, want)
	}
	if out.String() != "total_new=2 total_seen=1 invalid_skipped=0 unseen_emitted=1\n" {
		t.Fatalf("unexpected stats: %q", out.String())
	}

	update := &SeenUpdateCmd{Seen: seenPath, Input: outPath, Out: seenPath}
	if err := update.Run(ctx); err != nil {
		t.Fatalf("SeenUpdateCmd.Run() error = %v", err)
	}
	history, err := seen.ReadURNs(seenPath)
	if err != nil {
		t.Fatalf("ReadURNs() error = %v", err)
	}
	if want := []string{"urn:li:jobPosting:2", "urn:li:jobPosting:1"}; !reflect.DeepEqual(history, want) {
		t.Fatalf("history = %#v, want %#v", history, want)
	}
}
