package model

// Theme selects the presentation color scheme carried in the snapshot.
type Theme string

// Themes.
const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

// Settings holds the remote replication configuration. The endpoint URL is
// the only knob; an empty URL disables sync entirely.
type Settings struct {
	RemoteEndpointURL string `json:"remoteEndpointUrl,omitempty"`
}

// Snapshot is the aggregate root: the full application state at a point in
// time. It is owned exclusively by the state container; everything else
// receives copies. The JSON field names pin the durable storage slot format.
type Snapshot struct {
	Schema   []FieldDef    `json:"schema"`
	Records  []MatchRecord `json:"matches"`
	Settings Settings      `json:"settings"`
	Theme    Theme         `json:"theme"`
}

func floatPtr(f float64) *float64 { return &f }

// DefaultSchema returns the built-in six-field schema present at first run,
// so the store is never empty.
func DefaultSchema() []FieldDef {
	return []FieldDef{
		{ID: "auto_mobility", Label: "Auto mobility", Kind: KindFlag, Order: 0},
		{ID: "auto_score_top", Label: "Auto top-level scoring", Kind: KindCounter, Min: floatPtr(0), Max: floatPtr(99), Order: 1},
		{ID: "tele_score_manual", Label: "Teleop score (direct entry)", Kind: KindDirect, Min: floatPtr(0), Max: floatPtr(999), Order: 2},
		{ID: "driver_skill", Label: "Driver skill", Kind: KindGrade, Order: 3},
		{ID: "defense_quality", Label: "Defense quality", Kind: KindGrade, Order: 4},
		{ID: "notes", Label: "Notes", Kind: KindText, Order: 5},
	}
}

// DefaultSnapshot returns the state used at first run and whenever the
// persisted slot is absent or unreadable.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Schema:   DefaultSchema(),
		Records:  []MatchRecord{},
		Settings: Settings{},
		Theme:    ThemeDark,
	}
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Settings: s.Settings,
		Theme:    s.Theme,
	}
	if s.Schema != nil {
		out.Schema = make([]FieldDef, len(s.Schema))
		for i, d := range s.Schema {
			c := d
			if d.Min != nil {
				c.Min = floatPtr(*d.Min)
			}
			if d.Max != nil {
				c.Max = floatPtr(*d.Max)
			}
			out.Schema[i] = c
		}
	}
	if s.Records != nil {
		out.Records = make([]MatchRecord, len(s.Records))
		for i, r := range s.Records {
			c := r
			c.Values = r.CloneValues()
			out.Records[i] = c
		}
	}
	return out
}

// FieldByID returns the schema field with the given id.
func (s Snapshot) FieldByID(id string) (FieldDef, bool) {
	for _, d := range s.Schema {
		if d.ID == id {
			return d, true
		}
	}
	return FieldDef{}, false
}
