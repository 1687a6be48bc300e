package sink

import (
	"os"
	"testing"

	"github.com/spf13/afero"
)

func TestOpen_File(t *testing.T) {
	fs := afero.NewMemMapFs()
	w, err := Open(fs, Destination{Path: "listing.txt"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := w.Write([]byte("wait 45\n")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := afero.ReadFile(fs, "listing.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "wait 45\n" {
		t.Errorf("got %q", data)
	}
}

func TestOpen_Stdout(t *testing.T) {
	for _, p := range []string{"", "-"} {
		w, err := Open(afero.NewMemMapFs(), Destination{Path: p})
		if err != nil {
			t.Fatal(err)
		}
		if nc, ok := w.(nopCloser); !ok || nc.Writer != os.Stdout {
			t.Errorf("path %q: expected stdout, got %T", p, w)
		}
		if err := w.Close(); err != nil {
			t.Error(err)
		}
	}
}

func TestOpenSerial_Missing(t *testing.T) {
	w, err := Open(afero.NewMemMapFs(), Destination{SerialPort: "/dev/nonexistent-flocra-tty"})
	if err == nil {
		t.Fatal("expected error for missing serial device")
	}
	if w != nil {
		t.Errorf("writer must be nil on error, got %#v", w)
	}
}
