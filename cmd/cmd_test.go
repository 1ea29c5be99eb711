package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/photoalbum/internal/config"
	"github.com/zjrosen/photoalbum/internal/flags"
	"github.com/zjrosen/photoalbum/internal/log"
	"github.com/zjrosen/photoalbum/internal/presentation"
)

const buildings = `# two buildings and a sun
shape B1 rectangle 100 300 50 200 139 69 19
shape B2 rectangle 200 250 60 250 105 105 105
shape SUN oval 400 50 40 40 255 215 0
snapshot city at dawn
move SUN 400 20
color B1 160 82 45
snapshot city at noon
remove B2
shape B2 rectangle 200 250 duplicate 250 0 0 0
snapshot after demolition
`

func useDefaults(t *testing.T) {
	t.Helper()
	saved := cfg
	cfg = config.Defaults()
	t.Cleanup(func() { cfg = saved })
}

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "buildings.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCanvas(t *testing.T) {
	fallback := presentation.DefaultCanvas()

	got, err := parseCanvas(nil, fallback)
	require.NoError(t, err)
	require.Equal(t, fallback, got)

	got, err = parseCanvas([]string{"800", "600"}, fallback)
	require.NoError(t, err)
	require.Equal(t, presentation.Canvas{Width: 800, Height: 600}, got)

	_, err = parseCanvas([]string{"wide", "600"}, fallback)
	require.ErrorContains(t, err, "xmax")
	_, err = parseCanvas([]string{"800", "0"}, fallback)
	require.Error(t, err)

	require.Error(t, canvasArgs(nil, []string{"800"}))
	require.NoError(t, canvasArgs(nil, []string{"800", "600"}))
}

func TestValidateView(t *testing.T) {
	require.NoError(t, validateView("text", ""))
	require.NoError(t, validateView("toml", ""))
	require.NoError(t, validateView("web", "album.html"))
	require.ErrorContains(t, validateView("web", ""), "--out")
	require.ErrorContains(t, validateView("graphical", ""), "unknown view")
}

func TestRunAlbum_TextViewReportsBadLines(t *testing.T) {
	useDefaults(t)
	in := writeFixture(t, buildings)

	var stdout, stderr bytes.Buffer
	err := runAlbum(context.Background(), runOptions{in: in, view: viewText, canvas: cfg.Canvas()}, &stdout, &stderr)
	require.NoError(t, err)

	out := stdout.String()
	require.Contains(t, out, "Description: city at dawn")
	require.Contains(t, out, "Description: city at noon")
	require.Contains(t, out, "Description: after demolition")
	require.Contains(t, out, "Oval(name=SUN,x=400,y=20,rx=40,ry=40,color=(255,215,0))")

	require.Contains(t, stderr.String(), in+":10: ")
	require.Contains(t, stderr.String(), "invalid width")
}

func TestRunAlbum_StrictFailsOnRejectedLines(t *testing.T) {
	useDefaults(t)
	in := writeFixture(t, buildings)

	var stdout, stderr bytes.Buffer
	err := runAlbum(context.Background(), runOptions{in: in, view: viewText, strict: true, canvas: cfg.Canvas()}, &stdout, &stderr)
	require.ErrorContains(t, err, "1 command line(s) rejected")
	require.NotEmpty(t, stdout.String())
}

func TestRunAlbum_WebViewWritesFile(t *testing.T) {
	useDefaults(t)
	in := writeFixture(t, buildings)
	out := filepath.Join(t.TempDir(), "album.html")

	var stdout, stderr bytes.Buffer
	opts := runOptions{in: in, out: out, view: viewWeb, canvas: presentation.Canvas{Width: 800, Height: 600}}
	require.NoError(t, runAlbum(context.Background(), opts, &stdout, &stderr))
	require.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	html := string(data)
	require.Equal(t, 3, strings.Count(html, `<svg width="800" height="600">`))
	require.Contains(t, html, `<ellipse cx="440" cy="60" rx="40" ry="40" style="fill:rgb(255,215,0)" />`)
	require.Contains(t, html, "<p>Description: after demolition</p>")
}

func TestRunAlbum_JSONView(t *testing.T) {
	useDefaults(t)
	in := writeFixture(t, buildings)

	var stdout, stderr bytes.Buffer
	require.NoError(t, runAlbum(context.Background(), runOptions{in: in, view: "json", canvas: cfg.Canvas()}, &stdout, &stderr))

	var doc presentation.AlbumDTO
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	require.Len(t, doc.Snapshots, 3)
	require.Len(t, doc.Snapshots[0].Shapes, 3)
	require.Len(t, doc.Snapshots[2].Shapes, 2)
	require.Equal(t, []string{"B1", "SUN"}, []string{doc.Shapes[0].Name, doc.Shapes[1].Name})
}

func TestRunAlbum_MissingInput(t *testing.T) {
	useDefaults(t)
	var stdout, stderr bytes.Buffer
	err := runAlbum(context.Background(), runOptions{in: "does-not-exist.txt", view: viewText}, &stdout, &stderr)
	require.ErrorContains(t, err, "opening command file")
}

func TestRunAlbum_FlagsFromConfig(t *testing.T) {
	useDefaults(t)
	cfg.Flags[flags.FlagLegacySnapshotDescription] = true
	in := writeFixture(t, "snapshot a b c\nmove ghost 1 1\n")

	var stdout, stderr bytes.Buffer
	require.NoError(t, runAlbum(context.Background(), runOptions{in: in, view: "yaml", canvas: cfg.Canvas()}, &stdout, &stderr))
	require.Contains(t, stdout.String(), "description: a c")
	require.Contains(t, stderr.String(), ":2: shape not found")

	cfg.Flags[flags.FlagSilentMissingShape] = true
	stderr.Reset()
	stdout.Reset()
	require.NoError(t, runAlbum(context.Background(), runOptions{in: in, view: "yaml", canvas: cfg.Canvas()}, &stdout, &stderr))
	require.Empty(t, stderr.String())
}

func TestListSnapshots(t *testing.T) {
	useDefaults(t)
	in := writeFixture(t, buildings)

	var stdout, stderr bytes.Buffer
	require.NoError(t, listSnapshots(context.Background(), in, "table", false, &stdout, &stderr))

	out := stdout.String()
	require.Contains(t, out, "DESCRIPTION")
	require.Contains(t, out, "city at dawn")
	require.Contains(t, out, "after demolition")

	stdout.Reset()
	require.NoError(t, listSnapshots(context.Background(), in, "toml", false, &stdout, &stderr))
	require.Contains(t, stdout.String(), "[[snapshots]]")

	require.Error(t, listSnapshots(context.Background(), in, "xml", false, &stdout, &stderr))
}

func TestDiffAlbum(t *testing.T) {
	useDefaults(t)
	in := writeFixture(t, buildings)

	var stdout, stderr bytes.Buffer
	require.NoError(t, diffAlbum(context.Background(), in, "1", "2", &stdout, &stderr))

	out := stdout.String()
	require.Contains(t, out, "- Rectangle(name=B1,x=100,y=300,w=50,h=200,color=(139,69,19))")
	require.Contains(t, out, "+ Rectangle(name=B1,x=100,y=300,w=50,h=200,color=(160,82,45))")
	require.Contains(t, out, "  Rectangle(name=B2,")
	require.Contains(t, out, "+ Oval(name=SUN,x=400,y=20")

	require.ErrorContains(t, diffAlbum(context.Background(), in, "1", "9", &stdout, &stderr), "snapshot not found")
}

func TestInitConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".photoalbum", "config.yaml")

	var stdout bytes.Buffer
	require.NoError(t, initConfigFile(path, false, &stdout))
	require.Contains(t, stdout.String(), "Wrote "+path)

	require.ErrorContains(t, initConfigFile(path, false, &stdout), "already exists")
	require.NoError(t, initConfigFile(path, true, &stdout))
}

func TestFlagsListAndSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	var stdout bytes.Buffer
	require.NoError(t, setFlag(path, flags.FlagSilentMissingShape, "on", &stdout))
	require.Contains(t, stdout.String(), "silent-missing-shape = true")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "silent-missing-shape: true")

	require.ErrorContains(t, setFlag(path, "bogus", "on", &stdout), "unknown flag")
	require.ErrorContains(t, setFlag(path, flags.FlagSilentMissingShape, "maybe", &stdout), "invalid value")

	stdout.Reset()
	require.NoError(t, listFlags(flags.New(map[string]bool{flags.FlagSilentMissingShape: true}), &stdout))
	require.Contains(t, stdout.String(), "legacy-snapshot-description")
	require.Contains(t, stdout.String(), "true")
}

func TestParseSwitch(t *testing.T) {
	for in, want := range map[string]bool{"on": true, "OFF": false, "true": true, "0": false, "yes": true} {
		got, err := parseSwitch(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
}

func TestSetupLogging_VerboseEchoesEveryEntry(t *testing.T) {
	useDefaults(t)
	t.Setenv("PHOTOALBUM_DEBUG", "")
	savedDebug, savedVerbose := debugFlag, verboseFlag
	debugFlag, verboseFlag = false, true
	t.Cleanup(func() { debugFlag, verboseFlag = savedDebug, savedVerbose })

	var stderr bytes.Buffer
	cleanup, err := setupLogging(&stderr)
	require.NoError(t, err)

	const n = 200
	for i := range n {
		log.Info(log.CatCommand, "verbose entry", "i", i)
	}
	cleanup()

	require.Equal(t, n, strings.Count(stderr.String(), "verbose entry"))
}

func TestListSnapshots_Latest(t *testing.T) {
	useDefaults(t)
	in := writeFixture(t, buildings)

	var stdout, stderr bytes.Buffer
	require.NoError(t, listSnapshots(context.Background(), in, "json", true, &stdout, &stderr))

	var doc presentation.AlbumDTO
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	require.Len(t, doc.Snapshots, 1)
	require.Equal(t, "after demolition", doc.Snapshots[0].Description)

	stdout.Reset()
	require.NoError(t, listSnapshots(context.Background(), in, "table", true, &stdout, &stderr))
	require.Contains(t, stdout.String(), "after demolition")
	require.NotContains(t, stdout.String(), "city at dawn")

	empty := writeFixture(t, "shape R1 rectangle 0 0 1 1 0 0 0\n")
	stdout.Reset()
	require.NoError(t, listSnapshots(context.Background(), empty, "json", true, &stdout, &stderr))
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	require.Empty(t, doc.Snapshots)
}
