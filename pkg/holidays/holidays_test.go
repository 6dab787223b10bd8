package holidays

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leavely/internal/calendar"
)

func TestParseYAMLWrapped(t *testing.T) {
	doc := []byte(`
year: 2027
days:
  - date: "2027-01-01"
    name: 元旦
    type: holiday
  - date: "2027-02-06"
    name: 春节调休
    type: makeup
`)
	entries, err := ParseYAML(doc)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "holiday", entries[0].Type)
	assert.Equal(t, "workday", entries[1].Type)
	assert.Equal(t, "春节调休", entries[1].Name)
}

func TestParseYAMLList(t *testing.T) {
	entries, err := ParseYAML([]byte(`
- date: "2027-05-01"
  name: 劳动节
  type: holiday
`))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2027-05-01", entries[0].Date)
}

func TestParseJSONIsOffDay(t *testing.T) {
	entries, err := ParseJSON([]byte(`{"year":2027,"days":[
		{"name":"元旦","date":"2027-01-01","isOffDay":true},
		{"name":"春节","date":"2027-02-06","isOffDay":false}
	]}`))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "holiday", entries[0].Type)
	assert.Equal(t, "workday", entries[1].Type)
}

func TestParseRejectsBadEntries(t *testing.T) {
	_, err := ParseJSON([]byte(`[{"date":"01.01.2027","name":"x","type":"holiday"}]`))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`[{"date":"2027-01-01","name":"x"}]`))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`[{"date":"2027-01-01","name":"x","type":"party"}]`))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`{"year":2028,"days":[{"date":"2027-01-01","name":"x","type":"holiday"}]}`))
	assert.Error(t, err)
}

func TestParseFileByExtension(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "extra.yml")
	require.NoError(t, os.WriteFile(yml, []byte("- date: \"2027-10-01\"\n  name: 国庆节\n  type: holiday\n"), 0o600))
	entries, err := ParseFile(yml)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	js := filepath.Join(dir, "extra.json")
	require.NoError(t, os.WriteFile(js, []byte(`[{"date":"2027-10-09","name":"国庆调休","type":"workday"}]`), 0o600))
	entries, err = ParseFile(js)
	require.NoError(t, err)
	assert.Equal(t, "workday", entries[0].Type)

	_, err = ParseFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestEntryKindSharesCalendarSpellings(t *testing.T) {
	entries, err := ParseJSON([]byte(`[
		{"date":"2027-01-01","name":"元旦","type":"offday"},
		{"date":"2027-02-06","name":"春节调休","type":"workday-makeup"},
		{"date":"2027-02-07","name":"春节调休","type":"Makeup"}
	]`))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "holiday", entries[0].Type)
	assert.Equal(t, "workday", entries[1].Type)
	assert.Equal(t, "workday", entries[2].Type)

	for _, spelling := range []string{"holiday", "off", "offday", "workday", "makeup", "makeup-workday", "workday-makeup"} {
		want, err := calendar.ParseKind(spelling)
		require.NoError(t, err)
		got, err := Entry{Date: "2027-01-01", Type: spelling}.Kind()
		require.NoError(t, err, spelling)
		assert.Equal(t, want, got, spelling)
	}
}
