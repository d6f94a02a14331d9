package utils

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
)

func TestNormalizeIdentifier(t *testing.T) {
	for input, want := range map[string]string{
		"":           "",
		"main":       "main",
		"1st input":  "_1st_input",
		"a.b-c":      "a_b_c",
		"x_0":        "x_0",
		"naïve_name": "na_ve_name",
	} {
		if got := NormalizeIdentifier(input); got != want {
			t.Errorf("NormalizeIdentifier(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	for input, want := range map[string]string{
		"Add":            "add",
		"DotGeneral":     "dot_general",
		"BroadcastInDim": "broadcast_in_dim",
		"already_snake":  "already_snake",
	} {
		if got := ToSnakeCase(input); got != want {
			t.Errorf("ToSnakeCase(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDTypeToStableHLO(t *testing.T) {
	for dtype, want := range map[dtypes.DType]string{
		dtypes.Bool:      "i1",
		dtypes.Uint8:     "ui8",
		dtypes.Float32:   "f32",
		dtypes.BFloat16:  "bf16",
		dtypes.Complex64: "complex<f32>",
	} {
		if got := DTypeToStableHLO(dtype); got != want {
			t.Errorf("DTypeToStableHLO(%s) = %q, want %q", dtype, got, want)
		}
	}
}
