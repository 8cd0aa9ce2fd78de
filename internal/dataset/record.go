package dataset

// Record is one row of the dataset: a single Pokémon with its typing and stats.
type Record struct {
	Name       string
	Generation int
	Type1      string
	Type2      string // empty when the Pokémon has a single type
	Legendary  bool

	HP      int
	Attack  int
	Defense int
	SpAtk   int
	SpDef   int
	Speed   int
	Total   int

	// Derived columns, populated by Derive.
	TypePairing  string
	TypeCombo    string
	Offense      int
	DefenseTotal int
	Playstyle    Playstyle
}

// HasType2 reports whether the record carries a secondary type.
func (r Record) HasType2() bool { return r.Type2 != "" }

// Type2OrNone returns Type2, or the literal "None" when absent.
func (r Record) Type2OrNone() string {
	if r.Type2 == "" {
		return NoType
	}
	return r.Type2
}

// Table is an in-memory, read-only collection of records in input order.
type Table struct {
	Source  string
	Records []Record
	derived bool
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Derived reports whether derived columns have been computed.
func (t *Table) Derived() bool { return t != nil && t.derived }

// Stat identifies one of the seven numeric battle stat columns.
type Stat int

const (
	HP Stat = iota
	Attack
	Defense
	SpAtk
	SpDef
	Speed
	Total
)

// Stats lists every stat in display order.
var Stats = []Stat{HP, Attack, Defense, SpAtk, SpDef, Speed, Total}

var statLabels = [...]string{"HP", "Attack", "Defense", "Sp. Atk", "Sp. Def", "Speed", "Total"}

// String returns the column header used in the source file.
func (s Stat) String() string {
	if s < 0 || int(s) >= len(statLabels) {
		return "Stat(?)"
	}
	return statLabels[s]
}

// Of returns the value of stat s for record r.
func (s Stat) Of(r Record) int {
	switch s {
	case HP:
		return r.HP
	case Attack:
		return r.Attack
	case Defense:
		return r.Defense
	case SpAtk:
		return r.SpAtk
	case SpDef:
		return r.SpDef
	case Speed:
		return r.Speed
	case Total:
		return r.Total
	}
	return 0
}

// ParseStat maps a header label (e.g. "Sp. Atk") back to its Stat.
func ParseStat(label string) (Stat, bool) {
	for i, l := range statLabels {
		if normalizeHeader(l) == normalizeHeader(label) {
			return Stat(i), true
		}
	}
	return 0, false
}
