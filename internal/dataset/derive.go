package dataset

// Playstyle classifies a record by the balance between its offensive and
// defensive stat totals.
type Playstyle string

const (
	Offensive Playstyle = "Offensive"
	Defensive Playstyle = "Defensive"
	Balanced  Playstyle = "Balanced"
)

const (
	// PairingSingle and PairingDual are the TypePairing labels.
	PairingSingle = "Single"
	PairingDual   = "Dual"
	// NoType stands in for an absent Type2 in combos and groupings.
	NoType = "None"
	// PlaystyleMargin is how far one side must exceed the other, strictly.
	PlaystyleMargin = 20
)

// Classify labels a stat profile. A difference of exactly PlaystyleMargin is Balanced.
func Classify(offense, defenseTotal int) Playstyle {
	switch {
	case offense > defenseTotal+PlaystyleMargin:
		return Offensive
	case defenseTotal > offense+PlaystyleMargin:
		return Defensive
	default:
		return Balanced
	}
}

// DeriveRecord returns a copy of r with the derived columns filled in.
func DeriveRecord(r Record) Record {
	if r.HasType2() {
		r.TypePairing = PairingDual
	} else {
		r.TypePairing = PairingSingle
	}
	r.TypeCombo = r.Type1 + " / " + r.Type2OrNone()
	r.Offense = r.Attack + r.SpAtk
	r.DefenseTotal = r.Defense + r.SpDef
	r.Playstyle = Classify(r.Offense, r.DefenseTotal)
	return r
}

// Derive returns a new table with derived columns attached to every record.
// The input table is not modified.
func Derive(t *Table) *Table {
	out := &Table{derived: true}
	if t == nil {
		return out
	}
	out.Source = t.Source
	out.Records = make([]Record, len(t.Records))
	for i, r := range t.Records {
		out.Records[i] = DeriveRecord(r)
	}
	return out
}
