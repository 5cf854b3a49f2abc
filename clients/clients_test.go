package clients

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
)

func newTestHTTP(t *testing.T) (*HTTP, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	h := NewHTTP(5*time.Second, log)
	h.SetProgress(io.Discard)
	return h, hook
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.WriteString(w, body); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDownload(t *testing.T) {
	payload := []byte("archive bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	h, hook := newTestHTTP(t)
	dest := filepath.Join(t.TempDir(), "sub", "emodb.zip")
	n, err := h.Download(context.Background(), srv.URL, dest)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if n != int64(len(payload)) {
		t.Errorf("n = %d, want %d", n, len(payload))
	}
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("content = %q", got)
	}
	if last := hook.LastEntry(); last == nil || last.Message != "download complete" {
		t.Errorf("last log entry = %v", last)
	}
	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(dest), "*.part"))
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
}

func TestDownloadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	h, _ := newTestHTTP(t)
	dest := filepath.Join(t.TempDir(), "emodb.zip")
	if _, err := h.Download(context.Background(), srv.URL, dest); err == nil {
		t.Fatal("expected error for 404")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("dest should not exist after failed download")
	}
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "a.zip")
	data := buildZip(t, map[string]string{
		"wav/03a01Wa.wav": "RIFF",
		"erkennung.txt":   "Satz erkannt\n",
	})
	if err := os.WriteFile(archive, data, 0o644); err != nil {
		t.Fatal(err)
	}
	n, err := Extract(archive, filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if n != 2 {
		t.Errorf("extracted %d files, want 2", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "wav", "03a01Wa.wav")); err != nil {
		t.Errorf("wav not extracted: %v", err)
	}
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	if err := os.WriteFile(archive, buildZip(t, map[string]string{"../evil.txt": "x"}), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Extract(archive, filepath.Join(dir, "out")); err == nil {
		t.Fatal("expected error for entry escaping destination")
	}
	if _, err := os.Stat(filepath.Join(dir, "evil.txt")); !os.IsNotExist(err) {
		t.Error("escaping entry was written")
	}
}

func TestAcquireDownloadsOnce(t *testing.T) {
	var hits atomic.Int32
	data := buildZip(t, map[string]string{"wav/03a01Wa.wav": "RIFF", "erkennung.txt": "Satz erkannt\n"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	dir := t.TempDir()
	src := Source{
		URL:     srv.URL,
		Archive: filepath.Join(dir, "emodb.zip"),
		Dir:     filepath.Join(dir, "emodb-src"),
	}
	h, _ := newTestHTTP(t)

	fetched, err := h.Acquire(context.Background(), src)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if !fetched {
		t.Error("first Acquire should fetch")
	}
	if _, err := os.Stat(filepath.Join(src.Dir, "erkennung.txt")); err != nil {
		t.Errorf("table not extracted: %v", err)
	}
	if _, err := os.Stat(src.Dir + ".extracting"); !os.IsNotExist(err) {
		t.Error("staging directory left behind")
	}

	fetched, err = h.Acquire(context.Background(), src)
	if err != nil {
		t.Fatalf("second Acquire: %v", err)
	}
	if fetched {
		t.Error("second Acquire should not fetch")
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}
}

func writeWAV(t *testing.T, path string, rate, channels, bits int, samples int) {
	t.Helper()
	blockAlign := channels * bits / 8
	dataLen := samples * blockAlign
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(rate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(rate*blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bits))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(make([]byte, dataLen))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestProbeWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "03a01Wa.wav")
	writeWAV(t, path, 16000, 1, 16, 1600)

	info, err := ProbeWAV(path)
	if err != nil {
		t.Fatalf("ProbeWAV: %v", err)
	}
	if info.SampleRate != 16000 || info.Channels != 1 || info.BitDepth != 16 {
		t.Errorf("info = %+v", info)
	}
}

func TestProbeWAVRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(path, []byte("definitely not a riff file, but long enough to read a header"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ProbeWAV(path); err == nil {
		t.Fatal("expected error for non-WAV file")
	}
}
