package features

import "github.com/foreverwb/volquant/internal/schema"

const (
	SkewSteepPut = "steep_put"
	SkewCallRich = "call_rich"
	SkewBalanced = "balanced"

	StructSymmetric = "symmetric"
	StructPutWing   = "put_wing"
	StructCallWing  = "call_wing"
)

// Skew is the skew feature bundle (spec.md §4.2). The 25-delta
// components are only populated when per-delta IVs are supplied
// separately from the 22 required fields (they usually are not; see
// SPEC_FULL.md §8, grounded on original_source/features/skew.py).
type Skew struct {
	Asymmetry            float64
	Regime               string
	StructurePreference  string
	Delta25CallIV        *float64
	Delta25PutIV         *float64
}

// ComputeSkew implements spec.md §4.2's skew rules: steep_put above
// 0.03, call_rich below -0.02, else balanced; structure_preference is
// symmetric within +/-0.02, else put_wing/call_wing by sign.
func ComputeSkew(s *schema.InputSnapshot) Skew {
	asym := s.Structure.SkewAsymmetry

	regime := SkewBalanced
	switch {
	case asym > 0.03:
		regime = SkewSteepPut
	case asym < -0.02:
		regime = SkewCallRich
	}

	pref := StructSymmetric
	switch {
	case asym >= 0.02:
		pref = StructPutWing
	case asym <= -0.02:
		pref = StructCallWing
	}

	return Skew{
		Asymmetry:           asym,
		Regime:              regime,
		StructurePreference: pref,
	}
}

// ComputeSkew25Delta fills Delta25CallIV/Delta25PutIV when raw 25-delta
// IVs are supplied out-of-band (supplemented feature, SPEC_FULL.md §8;
// grounded on original_source/features/skew.py's richer skew path).
func ComputeSkew25Delta(base Skew, call25IV, put25IV *float64) Skew {
	base.Delta25CallIV = call25IV
	base.Delta25PutIV = put25IV
	return base
}
