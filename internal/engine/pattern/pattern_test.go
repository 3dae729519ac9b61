package pattern

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dshills/bytestorm/internal/engine/codec"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		enc        codec.Encoding
		wantBytes  []byte
		wantOrigin Origin
		wantErr    error
	}{
		{"spaced hex", "DE AD BE EF", codec.UTF8, []byte{0xDE, 0xAD, 0xBE, 0xEF}, OriginHex, nil},
		{"spaced hex lowercase", "de ad", codec.UTF8, []byte{0xDE, 0xAD}, OriginHex, nil},
		{"continuous hex", "DEADBEEF", codec.UTF8, []byte{0xDE, 0xAD, 0xBE, 0xEF}, OriginHex, nil},
		{"hex beats text", "00", codec.UTF8, []byte{0x00}, OriginHex, nil},
		{"two digit pair", "48", codec.UTF8, []byte{0x48}, OriginHex, nil},
		{"plain text", "Hello", codec.UTF8, []byte{0x48, 0x65, 0x6C, 0x6C, 0x6F}, OriginText, nil},
		{"text with spaces", "He ll", codec.UTF8, nil, OriginText, nil}, // tokens wrong length? no: He/ll are hex-ish? E is hex, H not -> text
		{"odd hex rejected", "ABC", codec.UTF8, nil, 0, ErrInvalidHexLength},
		{"odd hex digits rejected", "123", codec.UTF8, nil, 0, ErrInvalidHexLength},
		{"empty", "", codec.UTF8, nil, 0, ErrEmptyPattern},
		{"whitespace only", "   ", codec.UTF8, nil, 0, ErrEmptyPattern},
		{"fullwidth hex", "ＤＥＡＤ", codec.UTF8, []byte{0xDE, 0xAD}, OriginHex, nil},
		{"fullwidth spaced", "ＤＥ　ＡＤ", codec.UTF8, []byte{0xDE, 0xAD}, OriginHex, nil},
		{"text via sjis", "あ", codec.ShiftJIS, []byte{0x82, 0xA0}, OriginText, nil},
		{"unencodable text", "한", codec.ShiftJIS, nil, 0, codec.ErrUnencodableChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.input, tt.enc)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if p.Origin != tt.wantOrigin {
				t.Errorf("Origin = %v, want %v", p.Origin, tt.wantOrigin)
			}
			if tt.wantBytes != nil && !bytes.Equal(p.Bytes, tt.wantBytes) {
				t.Errorf("Bytes = % X, want % X", p.Bytes, tt.wantBytes)
			}
		})
	}
}

func TestCompileTextWithInteriorSpace(t *testing.T) {
	// "He ll" has tokens of length 2 but 'H' is not a hex digit, and the
	// whole string is not all-hex, so it must become a text pattern.
	p, err := Compile("He ll", codec.UTF8)
	if err != nil {
		t.Fatal(err)
	}
	if p.Origin != OriginText {
		t.Fatalf("Origin = %v, want text", p.Origin)
	}
	if !bytes.Equal(p.Bytes, []byte("He ll")) {
		t.Errorf("Bytes = %q", p.Bytes)
	}
}

func TestCompileDoubleSpaceFallsToText(t *testing.T) {
	// Two spaces between pairs breaks the spaced-hex form; the string
	// contains spaces so it is not continuous hex either.
	p, err := Compile("DE  AD", codec.UTF8)
	if err != nil {
		t.Fatal(err)
	}
	if p.Origin != OriginText {
		t.Errorf("Origin = %v, want text", p.Origin)
	}
}

func TestNormalizeHex(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"DE AD BE EF", "DEADBEEF"},
		{"0xDE, 0xad", "DEAD"},
		{"{0x48, 0x65}", "4865"},
		{"de\nad\tbe", "DEADBE"},
		{"ＤＥａｄ", "DEAD"},
		{"hello", "E"}, // only hex digits survive; h, l, o dropped
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeHex(tt.input); got != tt.want {
			t.Errorf("NormalizeHex(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLooksLikeHexAndHexToBytes(t *testing.T) {
	if !LooksLikeHex("48 65 6C 6C 6F") {
		t.Error("spaced hex not recognized")
	}
	if LooksLikeHex("ABC") {
		t.Error("odd-length hex should not look like hex")
	}
	if LooksLikeHex("hello world") {
		t.Error("plain text should not look like hex")
	}

	b, ok := HexToBytes("0x48, 0x65")
	if !ok || !bytes.Equal(b, []byte{0x48, 0x65}) {
		t.Errorf("HexToBytes = % X, %v", b, ok)
	}

	if _, ok := HexToBytes("ABC"); ok {
		t.Error("odd digit count must not decode")
	}
	if _, ok := HexToBytes(""); ok {
		t.Error("empty input must not decode")
	}
}

func TestFormatSpaced(t *testing.T) {
	if got := FormatSpaced([]byte{0x48, 0x65, 0x6C, 0x6C, 0x6F}); got != "48 65 6C 6C 6F" {
		t.Errorf("FormatSpaced = %q", got)
	}
	if got := FormatSpaced(nil); got != "" {
		t.Errorf("FormatSpaced(nil) = %q", got)
	}
}

func TestFormatContinuous(t *testing.T) {
	if got := FormatContinuous([]byte{0xDE, 0xAD}); got != "DEAD" {
		t.Errorf("FormatContinuous = %q", got)
	}
}

func TestHexFormatRoundTrip(t *testing.T) {
	data := []byte{0x00, 0x7F, 0x80, 0xFF, 0x48}

	b, ok := HexToBytes(FormatSpaced(data))
	if !ok || !bytes.Equal(b, data) {
		t.Errorf("spaced round trip: % X", b)
	}

	b, ok = HexToBytes(FormatContinuous(data))
	if !ok || !bytes.Equal(b, data) {
		t.Errorf("continuous round trip: % X", b)
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"0x100", 0x100, false},
		{"0X1f4", 0x1F4, false},
		{"1F4h", 0x1F4, false},
		{"1f4H", 0x1F4, false},
		{"1F4", 0x1F4, false}, // contains hex letter -> hex
		{"500", 500, false},   // plain digits -> decimal
		{"0", 0, false},
		{"ff", 0xFF, false},
		{"０ｘ１０", 0x10, false}, // fullwidth
		{"", 0, true},
		{"xyz", 0, true},
		{"-5", 0, true},
		{"0x", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAddress(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAddress) {
					t.Fatalf("err = %v, want ErrInvalidAddress", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAddress(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAddress(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCount(t *testing.T) {
	if v, err := ParseCount("0x10"); err != nil || v != 16 {
		t.Errorf("ParseCount(0x10) = %d, %v", v, err)
	}
	if v, err := ParseCount("42"); err != nil || v != 42 {
		t.Errorf("ParseCount(42) = %d, %v", v, err)
	}
	if _, err := ParseCount("ff"); err == nil {
		t.Error("bare hex letters should not parse as a count")
	}
}

func TestParseByteValue(t *testing.T) {
	tests := []struct {
		input   string
		want    byte
		wantErr bool
	}{
		{"0xFF", 0xFF, false},
		{"ff", 0xFF, false},
		{"00", 0x00, false},
		{"7", 0x07, false}, // single hex digit
		{"255", 255, false},
		{"256", 0, true},
		{"zz", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseByteValue(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseByteValue(%q) should fail", tt.input)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseByteValue(%q) = %#02x, %v, want %#02x", tt.input, got, err, tt.want)
		}
	}
}
