package trace

// TraceLevel controls the verbosity of run tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelBatches captures packing batches only.
	TraceLevelBatches TraceLevel = "batches"
	// TraceLevelTicks captures packing batches and per-tick agent aggregates.
	TraceLevelTicks TraceLevel = "ticks"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:    true,
	TraceLevelBatches: true,
	TraceLevelTicks:   true,
	"":                true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level     TraceLevel
	TickEvery int64 // record every Nth tick; <= 1 records all ticks
}

// SimulationTrace collects records during a run.
type SimulationTrace struct {
	Config  TraceConfig
	Batches []BatchRecord
	Ticks   []TickRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:  config,
		Batches: make([]BatchRecord, 0),
		Ticks:   make([]TickRecord, 0),
	}
}

// WantsBatches reports whether batch records are collected. Safe on nil.
func (st *SimulationTrace) WantsBatches() bool {
	return st != nil && (st.Config.Level == TraceLevelBatches || st.Config.Level == TraceLevelTicks)
}

// WantsTick reports whether the given tick is recorded. Safe on nil.
func (st *SimulationTrace) WantsTick(tick int64) bool {
	if st == nil || st.Config.Level != TraceLevelTicks {
		return false
	}
	return st.Config.TickEvery <= 1 || tick%st.Config.TickEvery == 0
}

// RecordBatch appends a packing batch record.
func (st *SimulationTrace) RecordBatch(record BatchRecord) {
	st.Batches = append(st.Batches, record)
}

// RecordTick appends a tick record.
func (st *SimulationTrace) RecordTick(record TickRecord) {
	st.Ticks = append(st.Ticks, record)
}
