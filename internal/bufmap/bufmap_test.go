package bufmap

import (
	"errors"
	"testing"

	"github.com/shiwa/flocompile/internal/instr"
)

func TestMap(t *testing.T) {
	tests := []struct {
		name  string
		col   Column
		value uint32
		want  []Write
	}{
		{"tx0_i", Tx0I, 5, []Write{{5, 5, 0xffff}}},
		{"tx1_q", Tx1Q, 0x1234, []Write{{8, 0x1234, 0xffff}}},
		{"rx0 rate full width", Rx0Rate, 0xfff, []Write{{3, 0x0fff, 0x0fff}}},
		{"rx1 rate", Rx1Rate, 7, []Write{{4, 7, 0x0fff}}},
		{"rx0 rate valid", Rx0RateValid, 1, []Write{{3, 0x4000, 0x4000}}},
		{"rx1 rate valid off", Rx1RateValid, 0, []Write{{4, 0, 0x4000}}},
		{"rx0 reset", Rx0RstN, 1, []Write{{3, 0x8000, 0x8000}}},
		{"rx1 reset", Rx1RstN, 1, []Write{{4, 0x8000, 0x8000}}},
		{"tx gate", TxGate, 1, []Write{{15, 0x1, 0x1}}},
		{"rx gate", RxGate, 1, []Write{{15, 0x2, 0x2}}},
		{"trig out", TrigOut, 1, []Write{{15, 0x4, 0x4}}},
		{"leds", Leds, 0xa5, []Write{{15, 0xa500, 0xff00}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Map(tt.col, tt.value, BoardGPAFHDO)
			if err != nil {
				t.Fatalf("Map: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d writes, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("write %d: got %+v want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMap_Gradient(t *testing.T) {
	t.Run("gpa-fhdo channel 2", func(t *testing.T) {
		got, err := Map(FhdoVz, 0x1234, BoardGPAFHDO)
		if err != nil {
			t.Fatal(err)
		}
		word := uint32(0x1234) | 0x80000 | 2<<16 | 2<<25
		want := []Write{{GradLowBuffer, uint16(word), 0xffff}, {GradHighBuffer, uint16(word >> 16), 0xffff}}
		if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("got %+v want %+v", got, want)
		}
	})

	t.Run("ocra1 channel 1", func(t *testing.T) {
		got, err := Map(Ocra1Vy, 0x3ffff, BoardOCRA1)
		if err != nil {
			t.Fatal(err)
		}
		word := uint32(0x3ffff)<<2 | 0x100000 | 1<<25
		if got[0].Value != uint16(word) || got[1].Value != uint16(word>>16) {
			t.Errorf("got %+v, word %#x", got, word)
		}
	})

	mismatch := []struct {
		name  string
		col   Column
		board Board
	}{
		{"ocra1 column on gpa-fhdo", Ocra1Vx, BoardGPAFHDO},
		{"gpa-fhdo column on ocra1", FhdoVz2, BoardOCRA1},
		{"no board", FhdoVx, BoardUnknown},
	}
	for _, tt := range mismatch {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Map(tt.col, 1, tt.board)
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestMap_OutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		col   Column
		value uint32
		board Board
	}{
		{"tx wider than 16 bit", Tx0I, 0x10000, BoardGPAFHDO},
		{"rx rate wider than 12 bit", Rx0Rate, 0x1000, BoardGPAFHDO},
		{"rx rate 0xfabc", Rx1Rate, 0xfabc, BoardGPAFHDO},
		{"rate valid flag 2", Rx0RateValid, 2, BoardGPAFHDO},
		{"reset flag 2", Rx1RstN, 2, BoardGPAFHDO},
		{"gate 2", TxGate, 2, BoardGPAFHDO},
		{"trig out 3", TrigOut, 3, BoardGPAFHDO},
		{"leds 0x100", Leds, 0x100, BoardGPAFHDO},
		{"gpa-fhdo wider than 16 bit", FhdoVx, 0x10000, BoardGPAFHDO},
		{"ocra1 wider than 18 bit", Ocra1Vz2, 0x40000, BoardOCRA1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Map(tt.col, tt.value, tt.board)
			if !errors.Is(err, instr.ErrRange) {
				t.Fatalf("expected ErrRange, got %v (writes %+v)", err, got)
			}
			if got != nil {
				t.Errorf("writes returned with error: %+v", got)
			}
		})
	}
}

func TestMap_UnknownColumn(t *testing.T) {
	for _, c := range []Column{0, 23, -1} {
		if _, err := Map(c, 0, BoardOCRA1); !errors.Is(err, ErrConfiguration) {
			t.Errorf("Map(%d): expected ErrConfiguration, got %v", int(c), err)
		}
	}
}

func TestParseBoard(t *testing.T) {
	tests := []struct {
		in      string
		want    Board
		wantErr bool
	}{
		{"gpa-fhdo", BoardGPAFHDO, false},
		{"ocra1", BoardOCRA1, false},
		{"", BoardUnknown, true},
		{"ocra2", BoardUnknown, true},
	}
	for _, tt := range tests {
		got, err := ParseBoard(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseBoard(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestColumn_String(t *testing.T) {
	if Tx0I.String() != "tx0_i" || Leds.String() != "leds" {
		t.Errorf("unexpected names %s %s", Tx0I, Leds)
	}
	if NumColumns != 22 {
		t.Errorf("NumColumns = %d, want 22", NumColumns)
	}
}
