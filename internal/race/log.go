package race

// RecordType classifies entries of the observable event log
type RecordType string

const (
	RecordRoll        RecordType = "roll"
	RecordMove        RecordType = "move"
	RecordWarp        RecordType = "warp"
	RecordTrip        RecordType = "trip"
	RecordAbility     RecordType = "ability"
	RecordSkip        RecordType = "skip"
	RecordFinish      RecordType = "finish"
	RecordElimination RecordType = "elimination"
)

// Record is one immutable entry of the race's append-only event log. The log
// is total: every observable state change produces exactly one record, in
// resolution order. It is the sole artifact consumed by telemetry.
type Record struct {
	RaceID string     `json:"race_id"`
	Turn   int        `json:"turn"`
	Type   RecordType `json:"type"`
	Racer  int        `json:"racer"`
	Source Source     `json:"source"`

	// roll fields
	Dice  int `json:"dice,omitempty"`
	Base  int `json:"base,omitempty"`
	Final int `json:"final,omitempty"`

	// movement fields
	From int `json:"from,omitempty"`
	To   int `json:"to,omitempty"`

	// ability fields
	Target int `json:"target,omitempty"`

	// finish fields
	Rank int `json:"rank,omitempty"`
}

// eventLog is the append-only record sink owned by the engine
type eventLog struct {
	raceID  string
	records []Record
}

func (l *eventLog) append(turn int, rec Record) {
	rec.RaceID = l.raceID
	rec.Turn = turn
	l.records = append(l.records, rec)
}
