package catalog

import (
	"math"

	"github.com/leapstack-labs/goldensearch/pkg/golden"
)

func phiPow(k float64) float64 { return golden.PowF(k) }

// Default returns the built-in table.
func Default() *Catalog {
	c := New()
	for _, k := range defaults() {
		if err := c.Add(k); err != nil {
			panic(err)
		}
	}
	return c
}

func defaults() []Constant {
	return []Constant{
		// Electromagnetic
		{
			Name: "alpha_inv", Symbol: "α⁻¹", Sector: SectorElectromagnetic,
			Formula: "137 + φ⁻⁷ + φ⁻¹⁴ + φ⁻¹⁶ - φ⁻⁸/248",
			Eval: func() float64 {
				return 137 + phiPow(-7) + phiPow(-14) + phiPow(-16) - phiPow(-8)/golden.E8Dim
			},
			Experimental: 137.035999084, Uncertainty: 0.000000021,
		},
		{
			Name: "sin2_theta_w", Symbol: "sin²θ_W", Sector: SectorElectromagnetic,
			Formula:      "3/13 + φ⁻¹⁶",
			Eval:         func() float64 { return 3.0/13.0 + phiPow(-16) },
			Experimental: 0.23122, Uncertainty: 0.00003,
		},

		// Leptons
		{
			Name: "muon_electron", Symbol: "m_μ/m_e", Sector: SectorLeptons,
			Formula:      "φ¹¹ + φ⁴ + 1 - φ⁻⁵ - φ⁻¹⁵",
			Eval:         func() float64 { return phiPow(11) + phiPow(4) + 1 - phiPow(-5) - phiPow(-15) },
			Experimental: 206.7682830, Uncertainty: 0.0000046,
		},
		{
			Name: "tau_muon", Symbol: "m_τ/m_μ", Sector: SectorLeptons,
			Formula:      "φ⁶ - φ⁻⁴ - 1 + φ⁻⁸",
			Eval:         func() float64 { return phiPow(6) - phiPow(-4) - 1 + phiPow(-8) },
			Experimental: 16.8170, Uncertainty: 0.0001,
		},

		// Quarks
		{
			Name: "strange_down", Symbol: "m_s/m_d", Sector: SectorQuarks,
			Formula: "L₃² = (φ³ + φ⁻³)²",
			Eval: func() float64 {
				l := golden.Lucas(3)
				return l * l
			},
			Experimental: 20.0, Uncertainty: 2.0,
		},
		{
			Name: "charm_strange", Symbol: "m_c/m_s", Sector: SectorQuarks,
			Formula: "(φ⁵ + φ⁻³)(1 + 28/(240φ²))",
			Eval: func() float64 {
				return (phiPow(5) + phiPow(-3)) * (1 + float64(golden.SO8Dim)/(golden.E8Roots*phiPow(2)))
			},
			Experimental: 11.83, Uncertainty: 0.05,
		},
		{
			Name: "bottom_charm", Symbol: "m_b/m_c", Sector: SectorQuarks,
			Formula:      "φ² + φ⁻³",
			Eval:         func() float64 { return phiPow(2) + phiPow(-3) },
			Experimental: 2.86, Uncertainty: 0.02,
		},
		{
			Name: "top_bottom", Symbol: "m_t/m_b", Sector: SectorQuarks,
			Formula:      "φ⁵ + φ⁴ + φ³",
			Eval:         func() float64 { return phiPow(5) + phiPow(4) + phiPow(3) },
			Experimental: 40.8, Uncertainty: 0.5,
		},
		{
			Name: "proton_electron", Symbol: "m_p/m_e", Sector: SectorQuarks,
			Formula: "6π⁵(1 + φ⁻²⁴ + φ⁻¹³/240)",
			Eval: func() float64 {
				return 6 * math.Pow(math.Pi, 5) * (1 + phiPow(-24) + phiPow(-13)/golden.E8Roots)
			},
			Experimental: 1836.15267343, Uncertainty: 0.00000011,
		},

		// CKM
		{
			Name: "v_us", Symbol: "|V_us|", Sector: SectorCKM,
			Formula:      "φ⁻²(1 - φ⁻⁸)",
			Eval:         func() float64 { return phiPow(-2) * (1 - phiPow(-8)) },
			Experimental: 0.2252, Uncertainty: 0.0005,
		},
		{
			Name: "v_cb", Symbol: "|V_cb|", Sector: SectorCKM,
			Formula:      "φ⁻⁴(1 + φ⁻⁸/2)",
			Eval:         func() float64 { return phiPow(-4) * (1 + phiPow(-8)/2) },
			Experimental: 0.0412, Uncertainty: 0.0008,
		},
		{
			Name: "v_ub", Symbol: "|V_ub|", Sector: SectorCKM,
			Formula:      "φ⁻⁶(1 - φ⁻⁴)",
			Eval:         func() float64 { return phiPow(-6) * (1 - phiPow(-4)) },
			Experimental: 0.00361, Uncertainty: 0.00011,
		},

		// Cosmology
		{
			Name: "z_cmb", Symbol: "z_CMB", Sector: SectorCosmology,
			Formula:      "φ¹⁴ + 246",
			Eval:         func() float64 { return phiPow(14) + (golden.E8Dim - 2) },
			Experimental: 1089.80, Uncertainty: 0.21,
		},
		{
			Name: "omega_lambda", Symbol: "Ω_Λ", Sector: SectorCosmology,
			Formula: "φ⁻¹ + φ⁻⁶ + φ⁻⁹ - φ⁻¹³ + φ⁻²⁸ + ε·φ⁻⁷",
			Eval: func() float64 {
				return phiPow(-1) + phiPow(-6) + phiPow(-9) - phiPow(-13) + phiPow(-28) + golden.Torsion*phiPow(-7)
			},
			Experimental: 0.6889, Uncertainty: 0.0056,
		},
		{
			Name: "hubble", Symbol: "H₀", Sector: SectorCosmology,
			Formula: "100·φ⁻¹·(1 + φ⁻⁴ - 1/(30φ²))",
			Eval: func() float64 {
				return 100 * phiPow(-1) * (1 + phiPow(-4) - 1/(golden.CoxeterNumber*phiPow(2)))
			},
			Experimental: 70.0, Uncertainty: 1.4,
		},
		{
			Name: "spectral_index", Symbol: "n_s", Sector: SectorCosmology,
			Formula:      "1 - φ⁻⁷",
			Eval:         func() float64 { return 1 - phiPow(-7) },
			Experimental: 0.9649, Uncertainty: 0.0042,
		},

		// Bell
		{
			Name: "chsh_bound", Symbol: "S_max", Sector: SectorBell,
			Formula:      "4 - φ",
			Eval:         golden.GSMBound,
			Experimental: 2.38, Uncertainty: 0.14,
			Prediction:   true,
		},
	}
}
