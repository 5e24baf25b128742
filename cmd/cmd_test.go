package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Xantino1997/flores/internal/models"
	"github.com/Xantino1997/flores/internal/publist"
	"github.com/Xantino1997/flores/internal/roster"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var fixturePath = filepath.Join("testdata", "roster.xml")

func loadedSession(t *testing.T) *roster.Session {
	t.Helper()
	session, err := newSession()
	require.NoError(t, err)
	require.NoError(t, session.LoadFile(fixturePath))
	return session
}

func TestParseFieldEdit(t *testing.T) {
	fe, err := parseFieldEdit("fname=Ana María")
	require.NoError(t, err)
	assert.Equal(t, fieldEdit{Field: models.FieldFirstName, Value: "Ana María"}, fe)

	fe, err = parseFieldEdit("addr=a=b")
	require.NoError(t, err)
	assert.Equal(t, "a=b", fe.Value, "only the first = separates")

	fe, err = parseFieldEdit("phone2=")
	require.NoError(t, err)
	assert.Equal(t, "", fe.Value)

	_, err = parseFieldEdit("fname")
	assert.Error(t, err)
	_, err = parseFieldEdit("nickname=x")
	assert.Error(t, err)
}

func TestParseMonthEdit(t *testing.T) {
	me, err := parseMonthEdit("1:Hours=12")
	require.NoError(t, err)
	assert.Equal(t, monthEdit{Index: 1, Field: models.MonthHours, Value: "12"}, me)

	me, err = parseMonthEdit("0:R.V.s=3")
	require.NoError(t, err)
	assert.Equal(t, models.MonthReturnVisits, me.Field)

	for _, bad := range []string{"Hours=1", "x:Hours=1", "0:Hours", "0:Year=2024"} {
		_, err := parseMonthEdit(bad)
		assert.Error(t, err, bad)
	}
}

func TestApplyEdits_GroupAndIDLast(t *testing.T) {
	session := loadedSession(t)
	require.NoError(t, session.Select("17"))

	err := applyEdits(session, "17",
		[]fieldEdit{
			{Field: models.FieldID, Value: "170"},
			{Field: models.FieldGroup, Value: "1"},
			{Field: models.FieldPhone2, Value: "555-9999"},
		},
		[]monthEdit{{Index: 1, Field: models.MonthHours, Value: "50"}},
	)
	require.NoError(t, err)

	i := roster.IndexOf(session.Publishers(), "170")
	require.GreaterOrEqual(t, i, 0)
	p := session.Publishers()[i]
	assert.Equal(t, "1", p.Group)
	assert.Equal(t, "555-9999", p.Phone2)
	assert.Equal(t, "50", p.Months[1].Hours)
	assert.Equal(t, roster.Selection{PublisherID: "170", Group: "1"}, session.Selection())
}

func TestApplyEdits_Errors(t *testing.T) {
	session := loadedSession(t)
	err := applyEdits(session, "4", nil, []monthEdit{{Index: 0, Field: models.MonthHours, Value: "1"}})
	assert.ErrorIs(t, err, roster.ErrMonthOutOfRange)

	err = applyEdits(session, "nobody", []fieldEdit{{Field: models.FieldFirstName, Value: "x"}}, nil)
	assert.ErrorIs(t, err, roster.ErrRecordNotFound)
}

func TestConfirmAction(t *testing.T) {
	tests := map[string]bool{
		"y\n":   true,
		"YES\n": true,
		"yes":   true,
		"n\n":   false,
		"\n":    false,
		"":      false,
	}
	for in, want := range tests {
		var out bytes.Buffer
		assert.Equal(t, want, confirmAction(strings.NewReader(in), &out, "Go?"), "input %q", in)
		assert.Equal(t, "Go? (y/N): ", out.String())
	}
}

func TestBuildReport(t *testing.T) {
	report := buildReport(loadedSession(t), "")
	assert.Equal(t, "Hourglass", report.Metadata.Agent)
	assert.Equal(t, []groupReport{{Group: "1", Active: 1}, {Group: "2", Active: 1}}, report.Groups)
	assert.Equal(t, 1, report.Inactive)
	require.Len(t, report.Publishers, 3)
	assert.Equal(t, []string{"Super", "Anciano"}, report.Publishers[0].Labels)

	sheet := buildReport(loadedSession(t), roster.InactiveBucket)
	require.Len(t, sheet.Publishers, 1)
	assert.Equal(t, []string{"Inactivo"}, sheet.Publishers[0].Labels)
}

func TestWriteReport_Formats(t *testing.T) {
	report := buildReport(loadedSession(t), "2")

	var text bytes.Buffer
	require.NoError(t, writeReport(&text, report, "text"))
	assert.Contains(t, text.String(), "[2] Marta Gómez (17) Regular")
	assert.Contains(t, text.String(), "inactivos  1")

	var js bytes.Buffer
	require.NoError(t, writeReport(&js, report, "json"))
	var decoded struct {
		Publishers []struct {
			ID     string   `json:"id"`
			Labels []string `json:"labels"`
		} `json:"publishers"`
	}
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	require.Len(t, decoded.Publishers, 1)
	assert.Equal(t, "17", decoded.Publishers[0].ID)
	assert.Equal(t, []string{"Regular"}, decoded.Publishers[0].Labels)

	var ym bytes.Buffer
	require.NoError(t, writeReport(&ym, report, "YAML"))
	var node map[string]any
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &node))
	pubs := node["publishers"].([]any)
	first := pubs[0].(map[string]any)
	assert.Equal(t, "Marta", first["firstName"], "record fields are inlined")

	assert.Error(t, writeReport(&text, report, "xml"))
}

func TestExportGroups(t *testing.T) {
	session := loadedSession(t)
	assert.Equal(t, []string{"1", "2", roster.InactiveBucket}, exportGroups(session, ""))
	assert.Equal(t, []string{"7"}, exportGroups(session, "7"))

	require.NoError(t, session.Remove("9"))
	assert.Equal(t, []string{"1", "2"}, exportGroups(session, ""))
}

func TestApplyEnv(t *testing.T) {
	var file, out string
	var recompute bool
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringVar(&file, "file", "", "")
	flags.StringVar(&out, "output", ".", "")
	flags.BoolVar(&recompute, "recompute-count", false, "")
	require.NoError(t, flags.Parse([]string{"--output", "explicit"}))

	t.Setenv("PUBLIST_FILE", "from-env.xml")
	t.Setenv("PUBLIST_OUTPUT_DIR", "env-dir")
	t.Setenv("PUBLIST_RECOMPUTE_COUNT", "true")
	require.NoError(t, applyEnv(flags))

	assert.Equal(t, "from-env.xml", file)
	assert.Equal(t, "explicit", out, "explicit flags win over the environment")
	assert.True(t, recompute)

	t.Setenv("PUBLIST_RECOMPUTE_COUNT", "maybe")
	flags2 := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags2.BoolVar(&recompute, "recompute-count", false, "")
	assert.Error(t, applyEnv(flags2))
}

func TestParseLevel(t *testing.T) {
	lvl, err := parseLevel("", false)
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)

	lvl, err = parseLevel("WARN", false)
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, lvl)

	lvl, err = parseLevel("error", true)
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl, "verbose wins")

	_, err = parseLevel("loud", false)
	assert.Error(t, err)
}

func TestNewTUILogger(t *testing.T) {
	l, err := newTUILogger("")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel), "no file means no logging")

	path := filepath.Join(t.TempDir(), "tui.log")
	l, err = newTUILogger(path)
	require.NoError(t, err)
	l.Info("hello")
	require.NoError(t, l.Sync())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestNewPolicy_InvalidLocale(t *testing.T) {
	saved := locale
	t.Cleanup(func() { locale = saved })

	locale = "not a locale!"
	_, err := newPolicy()
	assert.Error(t, err)

	locale = "en"
	p, err := newPolicy()
	require.NoError(t, err)
	assert.Equal(t, "en", p.Language().String())
}

func TestEditCommand_WritesEditedRoster(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"edit", "-f", fixturePath, "--id", "4", "--set", "group=5", "-o", dir})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())

	path := strings.TrimSpace(out.String())
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "publicadores_editado_"))

	doc, err := publist.ParseFile(path)
	require.NoError(t, err)
	var luis models.PublisherRecord
	for _, p := range doc.Publishers {
		if p.ID == "4" {
			luis = p
		}
	}
	assert.Equal(t, "5", luis.Group)
	assert.Equal(t, "3", doc.Metadata.Count)
}

func TestInspectCommand_JSON(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"inspect", "-f", fixturePath, "--format", "json"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())

	var report struct {
		Metadata models.RosterMetadata `json:"metadata"`
		Inactive int                   `json:"inactive"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "2024-09-01", report.Metadata.Date)
	assert.Equal(t, 1, report.Inactive)
}

func TestIsInteractive(t *testing.T) {
	assert.True(t, isInteractive(rootCmd))
	assert.True(t, isInteractive(tuiCmd))
	assert.False(t, isInteractive(inspectCmd))
	assert.False(t, isInteractive(editCmd))
}
