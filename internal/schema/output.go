package schema

import (
	"encoding/json"
	"os"

	"github.com/foreverwb/volquant/internal/atomicio"
	"github.com/foreverwb/volquant/internal/errs"
)

// KeyMetrics is the condensed per-update snapshot (spec.md §6.2).
type KeyMetrics struct {
	VRP30d             *float64 `json:"vrp_30d"`
	TriggerDistancePct float64  `json:"trigger_distance_pct"`
	FlipRisk           string   `json:"flip_risk"`
	NetGEXSign         int      `json:"net_gex_sign"`
}

// UpdateRecord is one append-only entry in the output file's updates[]
// array (spec.md §6.2, written by the `updated` CLI subcommand).
type UpdateRecord struct {
	Timestamp               string     `json:"timestamp"`
	RegimeState             string     `json:"regime_state"`
	RegimeChanged           bool       `json:"regime_changed"`
	VolTrigger              float64    `json:"vol_trigger"`
	Spot                    float64    `json:"spot"`
	GammaWallProximityPct   float64    `json:"gamma_wall_proximity_pct"`
	KeyMetrics              KeyMetrics `json:"key_metrics"`
	Alerts                  []string   `json:"alerts"`
}

// OutputFile is the append-only per-(symbol,date) output container
// (spec.md §3.1, §6.2).
type OutputFile struct {
	Symbol         string          `json:"symbol"`
	Date           string          `json:"date"`
	LastUpdate     string          `json:"last_update"`
	Updates        []UpdateRecord  `json:"updates"`
	FullAnalysis   json.RawMessage `json:"full_analysis"`
	GexbotCommands []string        `json:"gexbot_commands"`
}

// LoadOrInit returns the output file at path, or a fresh skeleton with
// empty updates and a null full_analysis when the file does not exist
// yet (spec.md §4.1).
func LoadOrInit(path, symbol, date string) (*OutputFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &OutputFile{
				Symbol:         symbol,
				Date:           date,
				Updates:        []UpdateRecord{},
				FullAnalysis:   json.RawMessage("null"),
				GexbotCommands: []string{},
			}, nil
		}
		return nil, errs.IOError("read output file", err)
	}
	var out OutputFile
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errs.ParseError("parse output file", err)
	}
	return &out, nil
}

// AppendUpdate is a pure in-memory transform appending record to
// obj.Updates and advancing LastUpdate (spec.md §4.1, §8.2: len(updates)
// grows by exactly 1, last(updates) returns r).
func AppendUpdate(obj *OutputFile, record UpdateRecord) {
	obj.Updates = append(obj.Updates, record)
	obj.LastUpdate = record.Timestamp
}

// SetFullAnalysis is a pure in-memory transform overwriting
// obj.FullAnalysis (spec.md §8.2: re-running task overwrites
// full_analysis and leaves updates unchanged).
func SetFullAnalysis(obj *OutputFile, analysis any) error {
	raw, err := json.Marshal(analysis)
	if err != nil {
		return errs.ParseError("marshal full_analysis", err)
	}
	obj.FullAnalysis = raw
	return nil
}

// SetGexbotCommands replaces the most recently generated data-collection
// command list (spec.md §3.1, supplemented feature from
// original_source/cli/gexbot.py).
func SetGexbotCommands(obj *OutputFile, commands []string) {
	obj.GexbotCommands = commands
}

// Persist writes obj to path via temp-file-then-rename (spec.md §4.1,
// §5: the output file is the only shared-mutation resource; atomic
// rename guarantees either the pre- or post-write snapshot is ever
// observed).
func Persist(path string, obj *OutputFile) error {
	if err := atomicio.WriteJSON(path, obj); err != nil {
		return errs.IOError("persist output file", err)
	}
	return nil
}
