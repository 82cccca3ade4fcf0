package services

import "testing"

func TestGenerateRecoveryCodeFormat(t *testing.T) {
	code, err := GenerateRecoveryCode()
	if err != nil {
		t.Fatalf("GenerateRecoveryCode() unexpected error: %v", err)
	}
	if err := ValidateRecoveryCodeFormat(code); err != nil {
		t.Fatalf("generated code %q fails its own format check: %v", code, err)
	}
}

func TestNormalizeRecoveryCode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "canonical", raw: "CONECTA-AB12-CD34-EF56", want: "CONECTA-AB12-CD34-EF56"},
		{name: "lowercase without dashes", raw: "conecta ab12 cd34 ef56", want: "CONECTA-AB12-CD34-EF56"},
		{name: "bare groups", raw: "AB12CD34EF56", want: "CONECTA-AB12-CD34-EF56"},
		{name: "unrecognizable stays uppercased", raw: "not a code", want: "NOT A CODE"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := NormalizeRecoveryCode(test.raw); got != test.want {
				t.Fatalf("NormalizeRecoveryCode(%q) = %q, want %q", test.raw, got, test.want)
			}
		})
	}
}

func TestValidateRecoveryCodeFormatRejectsForeignPrefixes(t *testing.T) {
	if err := ValidateRecoveryCodeFormat("ACCESO-AB12-CD34-EF56"); err == nil {
		t.Fatal("expected a foreign prefix to be rejected")
	}
}
