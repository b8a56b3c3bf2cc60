package audio

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type recordRunner struct {
	calls [][]string
}

func (r *recordRunner) Run(_ context.Context, _ []byte, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	return nil, nil
}

func TestLipSyncCommands(t *testing.T) {
	rr := &recordRunner{}
	l := LipSync{FFmpegBin: "ffmpeg", RhubarbBin: "/opt/rhubarb", Runner: rr}

	if err := l.MP3ToWAV(context.Background(), "a.mp3", "a.wav"); err != nil {
		t.Fatalf("MP3ToWAV error: %v", err)
	}
	if err := l.WAVToJSON(context.Background(), "a.wav", "a.json"); err != nil {
		t.Fatalf("WAVToJSON error: %v", err)
	}

	want := [][]string{
		{"ffmpeg", "-y", "-i", "a.mp3", "a.wav"},
		{"/opt/rhubarb", "-f", "json", "-o", "a.json", "a.wav", "-r", "phonetic"},
	}
	if !reflect.DeepEqual(rr.calls, want) {
		t.Fatalf("unexpected commands: %v", rr.calls)
	}
}

func TestFileHelpers(t *testing.T) {
	dir := t.TempDir()
	mp3 := filepath.Join(dir, "a.mp3")
	js := filepath.Join(dir, "a.json")
	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(mp3, []byte("abc"), 0o644)
	_ = os.WriteFile(js, []byte(`{"mouthCues":[{"start":0,"end":0.2,"value":"X"}]}`), 0o644)
	_ = os.WriteFile(bad, []byte(`{"mouthCues":`), 0o644)

	b64, err := FileToBase64(mp3)
	if err != nil || b64 != "YWJj" {
		t.Fatalf("unexpected base64 %q err=%v", b64, err)
	}
	if _, err := ReadJSON(js); err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	if _, err := ReadJSON(bad); err == nil {
		t.Fatalf("expected invalid json error")
	}
	if !Exists(mp3, js) || Exists(mp3, filepath.Join(dir, "missing")) || Exists(dir) {
		t.Fatalf("Exists gave wrong answer")
	}
}

func TestWritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	_ = os.WriteFile(blocker, []byte("x"), 0o644)

	target := filepath.Join(dir, "audios")
	got := WritableDir("", filepath.Join(blocker, "sub"), target)
	if got != target {
		t.Fatalf("expected %s, got %s", target, got)
	}
	entries, _ := os.ReadDir(target)
	if len(entries) != 0 {
		t.Fatalf("probe file left behind: %v", entries)
	}
}
