package encoder

import (
	"errors"
	"reflect"
	"testing"
)

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry("gImage_test")
	for _, format := range []string{"raw", "header", "ppm", "PNG"} {
		enc, err := r.Get(format)
		if err != nil {
			t.Errorf("Get(%q): %v", format, err)
			continue
		}
		if enc.Extension() == "" || enc.ContentType() == "" {
			t.Errorf("Get(%q): incomplete encoder %T", format, enc)
		}
	}

	if _, err := r.Get("webp"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Get(webp): got %v, want ErrUnknownFormat", err)
	}

	enc, _ := r.Get("header")
	if name := enc.(*HeaderEncoder).Name; name != "gImage_test" {
		t.Errorf("header name: got %q", name)
	}
}

func TestRegistry_ResolveFormats(t *testing.T) {
	r := NewRegistry("")
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"ppm", "header"}, []string{"ppm", "header"}},
		{[]string{"PPM", " ppm", "gif"}, []string{"ppm"}},
		{nil, []string{"raw"}},
		{[]string{"jpeg"}, []string{"raw"}},
	}
	for _, tt := range tests {
		if got := r.ResolveFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ResolveFormats(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRegistry_String(t *testing.T) {
	if got := NewRegistry("").String(); got != "encoders: raw, header, ppm, png" {
		t.Errorf("got %q", got)
	}
}
