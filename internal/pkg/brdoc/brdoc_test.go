package brdoc

import "testing"

func TestNormalize(t *testing.T) {
	if got := Normalize("12.345.678/0001-90"); got != "12345678000190" {
		t.Fatalf("Normalize: got %q", got)
	}
}

func TestValidCPF(t *testing.T) {
	cases := []struct {
		cpf  string
		want bool
	}{
		{"529.982.247-25", true},
		{"52998224725", true},
		{"529.982.247-26", false},
		{"111.111.111-11", false},
		{"123", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidCPF(tc.cpf); got != tc.want {
			t.Fatalf("ValidCPF(%q): got %v, want %v", tc.cpf, got, tc.want)
		}
	}
}

func TestValidCNPJ(t *testing.T) {
	cases := []struct {
		cnpj string
		want bool
	}{
		{"11.222.333/0001-81", true},
		{"11222333000181", true},
		{"11.222.333/0001-82", false},
		{"00.000.000/0000-00", false},
		{"123", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidCNPJ(tc.cnpj); got != tc.want {
			t.Fatalf("ValidCNPJ(%q): got %v, want %v", tc.cnpj, got, tc.want)
		}
	}
}
