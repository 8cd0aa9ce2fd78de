package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const samplePath = "testdata/pokemon_sample.csv"

func TestLoadSample(t *testing.T) {
	tbl, err := Load(samplePath, LoadOptions{})
	require.NoError(t, err)
	require.Equal(t, 20, tbl.Len())
	assert.Equal(t, "pokemon_sample.csv", tbl.Source)
	assert.False(t, tbl.Derived())

	b := tbl.Records[0]
	assert.Equal(t, "Bulbasaur", b.Name)
	assert.Equal(t, "Grass", b.Type1)
	assert.Equal(t, "Poison", b.Type2)
	assert.Equal(t, 1, b.Generation)
	assert.Equal(t, 318, b.Total)
	assert.Equal(t, 65, b.SpAtk)
	assert.False(t, b.Legendary)

	c := tbl.Records[1]
	assert.Equal(t, "Charmander", c.Name)
	assert.False(t, c.HasType2())
	assert.Equal(t, NoType, c.Type2OrNone())

	assert.True(t, tbl.Records[8].Legendary, "Articuno is legendary")
}

func TestLoadColumnOrderAndDelimiter(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "mons.tsv")
	content := "Legendary\tTotal\tSpeed\tSp. Def\tSp. Atk\tDefense\tAttack\tHP\tGeneration\tType 2\tType 1\tName\n" +
		"True\t680\t130\t90\t154\t90\t110\t106\t1\t\tPsychic\tMewtwo\n"
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	tbl, err := Load(p, LoadOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	r := tbl.Records[0]
	assert.Equal(t, "Mewtwo", r.Name)
	assert.Equal(t, 154, r.SpAtk)
	assert.True(t, r.Legendary)
	assert.Empty(t, r.Type2)
}

func TestReadDelimitedEmptyMiddleField(t *testing.T) {
	header := strings.Join(RequiredColumns, "\t") + "\n"
	row := "Charmander\tFire\t\t1\tFalse\t39\t52\t43\t60\t50\t65\t309\n"
	tbl, err := ReadDelimited(strings.NewReader(header+row), '\t')
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	r := tbl.Records[0]
	assert.Equal(t, "Charmander", r.Name)
	assert.Equal(t, "Fire", r.Type1)
	assert.False(t, r.HasType2())
	assert.Equal(t, 1, r.Generation)
	assert.Equal(t, 39, r.HP)
	assert.Equal(t, 309, r.Total)

	// comma input still tolerates spaces after the separator
	spaced := strings.Join(RequiredColumns, ", ") + "\n" + "Charmander, Fire, , 1, False, 39, 52, 43, 60, 50, 65, 309\n"
	tbl, err = ReadDelimited(strings.NewReader(spaced), ',')
	require.NoError(t, err)
	assert.Equal(t, "Fire", tbl.Records[0].Type1)
	assert.False(t, tbl.Records[0].HasType2())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	_, err := Load(filepath.Join(dir, "nope.csv"), LoadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	p := write("missing.csv", "Name,Type 1,Type 2,Generation,Legendary,HP,Attack,Defense,Sp. Atk,Sp. Def,Speed\nA,Fire,,1,False,1,1,1,1,1,1\n")
	_, err = Load(p, LoadOptions{})
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "Total")

	header := strings.Join(RequiredColumns, ",") + "\n"
	p = write("badstat.csv", header+"A,Fire,,1,False,1,x,1,1,1,1,6\n")
	_, err = Load(p, LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
	assert.Contains(t, err.Error(), `"Attack"`)

	p = write("neg.csv", header+"A,Fire,,1,False,1,1,-4,1,1,1,6\n")
	_, err = Load(p, LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")

	p = write("notype.csv", header+"A,,,1,False,1,1,1,1,1,1,6\n")
	_, err = Load(p, LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Type 1"`)

	p = write("badbool.csv", header+"A,Fire,,1,maybe,1,1,1,1,1,1,6\n")
	_, err = Load(p, LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boolean")

	p = write("empty.csv", "")
	_, err = Load(p, LoadOptions{})
	require.Error(t, err)
}

func TestLoadXLSX(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "mons.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("Stats")
	require.NoError(t, err)
	header := make([]interface{}, len(RequiredColumns))
	for i, c := range RequiredColumns {
		header[i] = c
	}
	require.NoError(t, f.SetSheetRow("Stats", "A1", &header))
	row := []interface{}{"Lugia", "Psychic", "Flying", 2, "True", 106, 90, 130, 90, 154, 110, 680}
	require.NoError(t, f.SetSheetRow("Stats", "A2", &row))
	require.NoError(t, f.SaveAs(p))
	require.NoError(t, f.Close())

	tbl, err := Load(p, LoadOptions{Sheet: "stats"})
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "Lugia", tbl.Records[0].Name)
	assert.Equal(t, "Flying", tbl.Records[0].Type2)
	assert.Equal(t, 154, tbl.Records[0].SpDef)
	assert.True(t, tbl.Records[0].Legendary)

	_, err = Load(p, LoadOptions{Sheet: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available sheets")
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		name         string
		offense, def int
		want         Playstyle
	}{
		{"clear offense", 100, 70, Offensive},
		{"slight defense", 80, 85, Balanced},
		{"offense at margin", 120, 100, Balanced},
		{"offense past margin", 121, 100, Offensive},
		{"defense at margin", 100, 120, Balanced},
		{"defense past margin", 100, 121, Defensive},
		{"equal", 0, 0, Balanced},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.offense, tc.def))
		})
	}
}

func TestDeriveRecordExamples(t *testing.T) {
	r := DeriveRecord(Record{Type1: "Fire", Attack: 50, SpAtk: 50, Defense: 40, SpDef: 30})
	assert.Equal(t, 100, r.Offense)
	assert.Equal(t, 70, r.DefenseTotal)
	assert.Equal(t, Offensive, r.Playstyle)
	assert.Equal(t, PairingSingle, r.TypePairing)
	assert.Equal(t, "Fire / None", r.TypeCombo)

	r = DeriveRecord(Record{Type1: "Water", Type2: "Ice", Attack: 40, SpAtk: 40, Defense: 40, SpDef: 45})
	assert.Equal(t, 80, r.Offense)
	assert.Equal(t, 85, r.DefenseTotal)
	assert.Equal(t, Balanced, r.Playstyle)
	assert.Equal(t, PairingDual, r.TypePairing)
	assert.Equal(t, "Water / Ice", r.TypeCombo)
}

func TestDeriveTable(t *testing.T) {
	src, err := Load(samplePath, LoadOptions{})
	require.NoError(t, err)
	out := Derive(src)

	require.True(t, out.Derived())
	require.Equal(t, src.Len(), out.Len())
	assert.Empty(t, src.Records[0].TypeCombo, "input must not be mutated")

	for _, r := range out.Records {
		assert.Equal(t, r.HasType2(), r.TypePairing == PairingDual, r.Name)
		assert.Equal(t, r.Type1+" / "+r.Type2OrNone(), r.TypeCombo, r.Name)
		assert.Equal(t, Classify(r.Offense, r.DefenseTotal), r.Playstyle, r.Name)
	}
	// Geodude and Treecko sit exactly on the margin.
	assert.Equal(t, Balanced, out.Records[5].Playstyle)
	assert.Equal(t, Balanced, out.Records[16].Playstyle)
}

func TestStatLabels(t *testing.T) {
	r := Record{HP: 1, Attack: 2, Defense: 3, SpAtk: 4, SpDef: 5, Speed: 6, Total: 7}
	for i, s := range Stats {
		assert.Equal(t, i+1, s.Of(r))
		back, ok := ParseStat(s.String())
		require.True(t, ok)
		assert.Equal(t, s, back)
	}
	_, ok := ParseStat("Luck")
	assert.False(t, ok)
	s, ok := ParseStat(" sp. atk ")
	require.True(t, ok)
	assert.Equal(t, SpAtk, s)
}
