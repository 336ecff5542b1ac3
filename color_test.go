package lsys

import (
	"image/color"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// Verify at compile time that Color implements color.Color.
var _ color.Color = Color(0)

func TestColorString(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{Black, "#000000"},
		{White, "#ffffff"},
		{0x3454c5, "#3454c5"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Color(%#x).String() = %q, want %q", uint32(tt.c), got, tt.want)
		}
	}
}

func TestColorUnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    Color
		wantErr bool
	}{
		{name: "integer", doc: "c: 3430597", want: 0x3458c5},
		{name: "hex integer", doc: "c: 0xff8800", want: 0xff8800},
		{name: "hash string", doc: "c: '#102030'", want: 0x102030},
		{name: "short form", doc: "c: '#fff'", want: White},
		{name: "out of range", doc: "c: 16777216", wantErr: true},
		{name: "not a color", doc: "c: teal", wantErr: true},
		{name: "sequence", doc: "c: [1, 2, 3]", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v struct{ C Color }
			err := yaml.Unmarshal([]byte(tt.doc), &v)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Unmarshal(%q) = %v, want error", tt.doc, v.C)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%q) = %v", tt.doc, err)
			}
			if v.C != tt.want {
				t.Errorf("Unmarshal(%q) = %v, want %v", tt.doc, v.C, tt.want)
			}
		})
	}
}

func TestColorMarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(struct{ C Color }{0x0a0b0c})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "#0a0b0c") {
		t.Errorf("Marshal() = %q, want #0a0b0c", out)
	}
	var back struct{ C Color }
	if err := yaml.Unmarshal(out, &back); err != nil || back.C != 0x0a0b0c {
		t.Errorf("Unmarshal(%q) = %v, %v", out, back.C, err)
	}
}
