// Package config loads the engine's Config struct, mirroring
// internal/gates/thresholds.go's NewThresholdRouter /
// NewThresholdRouterWithDefaults split: a pure-literal default builder
// plus an optional YAML override file read with gopkg.in/yaml.v3.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DecisionConfig holds the three-way classifier's hard gates (spec §4.5).
type DecisionConfig struct {
	LongScoreMin        float64 `yaml:"long_score_min"`
	LongProbMin         float64 `yaml:"long_prob_min"`
	LongOpposingMax     float64 `yaml:"long_opposing_max"`
	ShortScoreMin       float64 `yaml:"short_score_min"`
	ShortProbMin        float64 `yaml:"short_prob_min"`
	ShortOpposingMax    float64 `yaml:"short_opposing_max"`
	ConservativeProbMin float64 `yaml:"conservative_prob_min"`
	PreferredLongMin    float64 `yaml:"preferred_long_min"`
	PreferredLongProb   float64 `yaml:"preferred_long_prob"`
	PreferredShortMin   float64 `yaml:"preferred_short_min"`
	PreferredShortProb  float64 `yaml:"preferred_short_prob"`
	ConservativeMode    bool    `yaml:"conservative_mode"`
}

// EdgeConfig holds the execution gate's EV/RR/liquidity thresholds
// (spec §4.6.5).
type EdgeConfig struct {
	EVMin          float64 `yaml:"ev_min"`
	RRMin          float64 `yaml:"rr_min"`
	RRTarget       float64 `yaml:"rr_target"`
	SpreadMaxPctl  float64 `yaml:"spread_max_pctl"`
	IVAskMaxPctl   float64 `yaml:"ivask_max_pctl"`
	RRAggressiveMin float64 `yaml:"rr_aggressive_min"`
	RRBalancedMin   float64 `yaml:"rr_balanced_min"`
	RRBalancedMax   float64 `yaml:"rr_balanced_max"`
	RRConservativeMin float64 `yaml:"rr_conservative_min"`
	RRConservativeMax float64 `yaml:"rr_conservative_max"`
}

// RegimeConfig holds the gamma-regime detector's thresholds (spec §4.2).
type RegimeConfig struct {
	VolTriggerNeutralPct float64 `yaml:"vol_trigger_neutral_pct"`
	GammaWallPinPct      float64 `yaml:"gamma_wall_pin_pct"`
}

// WeightsLong holds the long-vol composite weighting (spec §4.3/§6.3).
type WeightsLong struct {
	VRP              float64 `yaml:"vrp"`
	GEX              float64 `yaml:"gex"`
	VEX              float64 `yaml:"vex"`
	Carry            float64 `yaml:"carry"`
	Skew             float64 `yaml:"skew"`
	Vanna            float64 `yaml:"vanna"`
	RV               float64 `yaml:"rv"`
	Liq              float64 `yaml:"liq"`
	VoV              float64 `yaml:"vov"`
	VixTS            float64 `yaml:"vix_ts"`
	RIM              float64 `yaml:"rim"`
	Compress         float64 `yaml:"compress"`
	EIR              float64 `yaml:"eir"`
	SingleStockBoost float64 `yaml:"single_stock_boost"`
}

// WeightsShort holds the short-vol composite weighting (spec §4.3/§6.3).
type WeightsShort struct {
	VRP           float64 `yaml:"vrp"`
	GEX           float64 `yaml:"gex"`
	VEX           float64 `yaml:"vex"`
	Carry         float64 `yaml:"carry"`
	Skew          float64 `yaml:"skew"`
	RV            float64 `yaml:"rv"`
	Liq           float64 `yaml:"liq"`
	VoV           float64 `yaml:"vov"`
	VixTS         float64 `yaml:"vix_ts"`
	RIM           float64 `yaml:"rim"`
	Compress      float64 `yaml:"compress"`
	EIR           float64 `yaml:"eir"`
	CorrIdx       float64 `yaml:"corr_idx"`
	FlowPutCrowd  float64 `yaml:"flow_putcrowd"`
}

// DTERange is an inclusive [Min, Max] days-to-expiration window.
type DTERange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// DTERangesConfig holds per-context DTE windows (spec §6.3).
type DTERangesConfig struct {
	LongVolEvent    DTERange `yaml:"long_vol_event"`
	LongVolNonEvent DTERange `yaml:"long_vol_non_event"`
	ShortVol        DTERange `yaml:"short_vol"`
}

// DeltaTargetsConfig holds per-structure delta defaults plus a
// risk-free rate (supplemented per original_source/core/strike_calculator.py's
// r=0.05 default, which spec.md omits). The delta inversion in
// internal/strike does not read RiskFreeRate.
type DeltaTargetsConfig struct {
	StraddleATM     float64 `yaml:"straddle_atm"`
	StrangleWing    float64 `yaml:"strangle_wing"`
	ShortSell       float64 `yaml:"short_sell"`
	ShortProtect    float64 `yaml:"short_protect"`
	DebitBuy        float64 `yaml:"debit_buy"`
	DebitSell       float64 `yaml:"debit_sell"`
	RiskFreeRate    float64 `yaml:"risk_free_rate"`
}

// CostsConfig holds the per-leg transaction-cost assumptions the EV
// Estimator's cost terms use (spec §4.6.4). Not named as a config
// section anywhere in spec.md or original_source; both just reference
// "slippage_pct"/"cost_per_contract" as EV-formula inputs, so literal
// industry-typical defaults are supplied here.
type CostsConfig struct {
	SlippagePct     float64 `yaml:"slippage_pct"`
	CostPerContract float64 `yaml:"cost_per_contract"`
}

// SessionConfig holds trading-session bounds (spec §6.3).
type SessionConfig struct {
	RTHStart     string `yaml:"rth_start"`
	RTHEnd       string `yaml:"rth_end"`
	Exclude0DTE  bool   `yaml:"exclude_0dte"`
}

// PathsConfig holds the runtime directory layout (spec §3.1).
type PathsConfig struct {
	RuntimeDir string `yaml:"runtime_dir"`
	InputsDir  string `yaml:"inputs_dir"`
	OutputsDir string `yaml:"outputs_dir"`
	LogsDir    string `yaml:"logs_dir"`
}

// CalibrationStoreConfig configures the optional Postgres-backed
// historical calibration sample store (SPEC_FULL §5.5). Disabled by
// default, mirroring internal/infrastructure/db.Config.
type CalibrationStoreConfig struct {
	Enabled         bool          `yaml:"enabled"`
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	QueryTimeout    time.Duration `yaml:"query_timeout"`
	// MinSamplesForFit gates the Probability Calibrator's choice between
	// a historical isotonic fit (at or above this count) and the
	// cold-start priors (below it) (spec.md §4.4).
	MinSamplesForFit int `yaml:"min_samples_for_fit"`
	BootstrapResamples int `yaml:"bootstrap_resamples"`
}

// LockConfig configures the cross-process output-file lock
// (SPEC_FULL §5.6). Empty Addr means fall back to an in-process mutex.
type LockConfig struct {
	Addr string        `yaml:"addr"`
	TTL  time.Duration `yaml:"ttl"`
}

// OracleConfig configures the LLM oracle resilience wrapper
// (SPEC_FULL §5.7).
type OracleConfig struct {
	TimeoutMs      int     `yaml:"timeout_ms"`
	MaxRetries     int     `yaml:"max_retries"`
	RequestsPerSec float64 `yaml:"requests_per_sec"`
	Burst          int     `yaml:"burst"`
	BreakerMaxFails uint32 `yaml:"breaker_max_consecutive_failures"`
	BreakerTimeout time.Duration `yaml:"breaker_timeout"`
}

// Config is the full engine configuration (spec §6.3 plus SPEC_FULL §5).
type Config struct {
	Decision         DecisionConfig         `yaml:"decision"`
	Edge             EdgeConfig             `yaml:"edge"`
	Regime           RegimeConfig           `yaml:"regime"`
	WeightsLong      WeightsLong            `yaml:"weights_long"`
	WeightsShort     WeightsShort           `yaml:"weights_short"`
	DTERanges        DTERangesConfig        `yaml:"dte_ranges"`
	DeltaTargets     DeltaTargetsConfig     `yaml:"delta_targets"`
	Costs            CostsConfig            `yaml:"costs"`
	Session          SessionConfig          `yaml:"session"`
	Paths            PathsConfig            `yaml:"paths"`
	CalibrationStore CalibrationStoreConfig `yaml:"calibration_store"`
	Lock             LockConfig             `yaml:"lock"`
	Oracle           OracleConfig           `yaml:"oracle"`
	IndexSymbols     []string               `yaml:"index_symbols"`
}

// Default returns the built-in configuration: every numeric threshold
// named in spec.md §4-§6 at its specified default.
func Default() *Config {
	return &Config{
		Decision: DecisionConfig{
			LongScoreMin:        1.00,
			LongProbMin:         0.55,
			LongOpposingMax:     0.30,
			ShortScoreMin:       1.00,
			ShortProbMin:        0.55,
			ShortOpposingMax:    0.30,
			ConservativeProbMin: 0.70,
			PreferredLongMin:    1.50,
			PreferredLongProb:   0.60,
			PreferredShortMin:   1.50,
			PreferredShortProb:  0.60,
			ConservativeMode:    false,
		},
		Edge: EdgeConfig{
			EVMin:             0.0,
			RRMin:             1.5,
			RRTarget:          2.0,
			SpreadMaxPctl:     80.0,
			IVAskMaxPctl:      80.0,
			RRAggressiveMin:   2.0,
			RRBalancedMin:     1.2,
			RRBalancedMax:     1.8,
			RRConservativeMin: 0.8,
			RRConservativeMax: 1.2,
		},
		Regime: RegimeConfig{
			VolTriggerNeutralPct: 0.002,
			GammaWallPinPct:      0.005,
		},
		WeightsLong: WeightsLong{
			VRP: 0.25, GEX: 0.18, VEX: 0.18, Carry: 0.08, Skew: 0.08,
			Vanna: 0.05, RV: 0.08, Liq: 0.10, VoV: 0, VixTS: 0, RIM: 0,
			Compress: 0, EIR: 0, SingleStockBoost: 0.15,
		},
		WeightsShort: WeightsShort{
			VRP: 0.30, GEX: 0.12, VEX: 0.12, Carry: 0.18, Skew: 0.08,
			RV: 0.08, Liq: 0.12, VoV: 0, VixTS: 0, RIM: 0, Compress: 0,
			EIR: 0, CorrIdx: 0.10, FlowPutCrowd: 0.10,
		},
		DTERanges: DTERangesConfig{
			LongVolEvent:    DTERange{Min: 5, Max: 20},
			LongVolNonEvent: DTERange{Min: 30, Max: 45},
			ShortVol:        DTERange{Min: 14, Max: 45},
		},
		DeltaTargets: DeltaTargetsConfig{
			StraddleATM:  0.50,
			StrangleWing: 0.325,
			ShortSell:    0.15,
			ShortProtect: 0.04,
			DebitBuy:     0.35,
			DebitSell:    0.175,
			RiskFreeRate: 0.05,
		},
		Costs: CostsConfig{
			SlippagePct:     0.01,
			CostPerContract: 0.65,
		},
		Session: SessionConfig{
			RTHStart:    "09:30",
			RTHEnd:      "16:00",
			Exclude0DTE: true,
		},
		Paths: PathsConfig{
			RuntimeDir: "runtime",
			InputsDir:  "runtime/inputs",
			OutputsDir: "runtime/outputs",
			LogsDir:    "runtime/logs",
		},
		CalibrationStore: CalibrationStoreConfig{
			Enabled:            false,
			MaxOpenConns:       10,
			MaxIdleConns:       5,
			ConnMaxLifetime:    30 * time.Minute,
			QueryTimeout:       5 * time.Second,
			MinSamplesForFit:   100,
			BootstrapResamples: 200,
		},
		Lock: LockConfig{
			TTL: 30 * time.Second,
		},
		Oracle: OracleConfig{
			TimeoutMs:       8000,
			MaxRetries:      2,
			RequestsPerSec:  2.0,
			Burst:           4,
			BreakerMaxFails: 3,
			BreakerTimeout:  60 * time.Second,
		},
		IndexSymbols: []string{"SPX", "NDX", "RUT", "DJX"},
	}
}

// Load reads a YAML override file on top of Default(). A missing path
// is not an error; the caller typically passes an empty string to run
// with pure defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// IsIndexSymbol reports whether symbol matches the configured index
// list (spec.md §9: "prefer single-stock path unless the symbol
// matches an explicit index list").
func (c *Config) IsIndexSymbol(symbol string) bool {
	for _, s := range c.IndexSymbols {
		if s == symbol {
			return true
		}
	}
	return false
}
