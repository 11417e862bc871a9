package jsonutil

import (
	"encoding/json"
	"strings"
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestDecodeJSONRaw(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    sample
		wantSub string
	}{
		{
			name: "ok",
			in:   `{"name":"a","count":2}`,
			want: sample{Name: "a", Count: 2},
		},
		{
			name: "empty_input_zero_value",
			in:   "",
			want: sample{},
		},
		{
			name: "whitespace_only_zero_value",
			in:   "  \n\t ",
			want: sample{},
		},
		{
			name:    "unknown_field",
			in:      `{"name":"a","bogus":1}`,
			wantSub: "decode JSON",
		},
		{
			name:    "trailing_value",
			in:      `{"name":"a"} {"name":"b"}`,
			wantSub: "trailing data",
		},
		{
			name:    "truncated",
			in:      `{"name":`,
			wantSub: "decode JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeJSONRaw[sample](json.RawMessage(tt.in))
			if tt.wantSub != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantSub) {
					t.Fatalf("err=%v want substring %q", err, tt.wantSub)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeJSONRaw: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v want %+v", got, tt.want)
			}
		})
	}
}

func TestEncodeToJSONRaw(t *testing.T) {
	raw, err := EncodeToJSONRaw(sample{Name: "x", Count: 3})
	if err != nil {
		t.Fatalf("EncodeToJSONRaw: %v", err)
	}
	if string(raw) != `{"name":"x","count":3}` {
		t.Fatalf("raw=%s", raw)
	}

	if _, err := EncodeToJSONRaw(func() {}); err == nil {
		t.Fatal("expected error for unmarshalable value")
	}
}
