package optypes

import "testing"

func TestToStableHLO(t *testing.T) {
	for op, want := range map[OpType]string{
		FuncReturn:          "func.return",
		Return:              "stablehlo.return",
		Add:                 "stablehlo.add",
		BroadcastInDim:      "stablehlo.broadcast_in_dim",
		DotGeneral:          "stablehlo.dot_general",
		ExponentialMinusOne: "stablehlo.exponential_minus_one",
		IsFinite:            "stablehlo.is_finite",
		ShiftRightLogical:   "stablehlo.shift_right_logical",
		Atan2:               "stablehlo.atan2",
	} {
		if got := op.ToStableHLO(); got != want {
			t.Errorf("%s.ToStableHLO() = %q, want %q", op, got, want)
		}
	}
}

func TestString(t *testing.T) {
	if got := Multiply.String(); got != "Multiply" {
		t.Errorf("Multiply.String() = %q", got)
	}
	if got := OpType(-1).String(); got != "OpType(-1)" {
		t.Errorf("OpType(-1).String() = %q", got)
	}
	for op := Invalid; op <= Last; op++ {
		if op.String() == "" {
			t.Errorf("OpType(%d) has no name", int(op))
		}
	}
}

func TestOpTypeString(t *testing.T) {
	op, err := OpTypeString("ShiftRightLogical")
	if err != nil || op != ShiftRightLogical {
		t.Errorf("OpTypeString(\"ShiftRightLogical\") = %s, %v", op, err)
	}
	op, err = OpTypeString("is_finite")
	if err == nil {
		t.Errorf("OpTypeString(\"is_finite\") = %s, want error", op)
	}
	if op, err = OpTypeString("isfinite"); err != nil || op != IsFinite {
		t.Errorf("OpTypeString(\"isfinite\") = %s, %v", op, err)
	}
	if got := len(OpTypeValues()); got != int(Last)+1 {
		t.Errorf("len(OpTypeValues()) = %d, want %d", got, int(Last)+1)
	}
	if OpType(-3).IsAOpType() || !Reduce.IsAOpType() {
		t.Errorf("IsAOpType() mismatch")
	}
}
