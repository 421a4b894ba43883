package internal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRunesToStrings(t *testing.T) {
	tests := []struct {
		name  string
		chars []rune
		want  []string
	}{
		{"nil", nil, []string{}},
		{"ascii", []rune{'a', 'b'}, []string{"a", "b"}},
		{"multibyte", []rune("路由"), []string{"路", "由"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, RunesToStrings(tt.chars)); diff != "" {
				t.Errorf("RunesToStrings() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJoinWithComma(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"nil", nil, ""},
		{"empty", []string{}, ""},
		{"single", []string{"a"}, "a"},
		{"several", []string{"a", "b", "c"}, "a,b,c"},
		{"empty elements kept", []string{"a", "", "c"}, "a,,c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinWithComma(tt.values); got != tt.want {
				t.Errorf("JoinWithComma() = %v, want %v", got, tt.want)
			}
		})
	}
}
