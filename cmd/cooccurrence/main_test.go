// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/formula-cooccurrence/internal/openalex"
	"github.com/pdiddy/formula-cooccurrence/internal/pairs"
	"github.com/pdiddy/formula-cooccurrence/internal/report"
	"github.com/pdiddy/formula-cooccurrence/internal/secrets"
	"github.com/pdiddy/formula-cooccurrence/pkg/types"
)

// --- helpers ---

func testRunConfig(baseURL, outDir string) types.RunConfig {
	return types.RunConfig{
		HTTP: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "test/0.1",
		},
		OpenAlex: types.OpenAlexConfig{
			BaseURL: baseURL,
			Mailto:  "test@example.com",
			PerPage: openalex.MaxPerPage,
		},
		Report: types.ReportConfig{OutputDir: outDir},
	}
}

// worksServer answers n works for the pair at index target and zero for
// every other pair. Requests for the pair at index failing get HTTP 503.
func worksServer(t *testing.T, target, n, failing int) (*httptest.Server, *int32) {
	t.Helper()
	ps := pairs.Default()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		q := strings.TrimPrefix(r.URL.Query().Get("filter"), "fulltext.search:")
		if failing >= 0 && q == openalex.BuildFulltextQuery(ps[failing]) {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if target >= 0 && q == openalex.BuildFulltextQuery(ps[target]) {
			var b strings.Builder
			fmt.Fprintf(&b, `{"meta":{"count":%d},"results":[`, n)
			for i := 0; i < n; i++ {
				if i > 0 {
					b.WriteString(",")
				}
				fmt.Fprintf(&b, `{"id":"https://openalex.org/W%d","display_name":"Work %d","publication_year":%d,"doi":"https://doi.org/10.1/%d","primary_location":{"source":{"display_name":"Venue"}}}`,
					i, i, 2000+i, i)
			}
			b.WriteString("]}")
			fmt.Fprint(w, b.String())
			return
		}
		fmt.Fprint(w, `{"meta":{"count":0},"results":[]}`)
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

// --- runWith ---

func TestRunWithSinglePairMatches(t *testing.T) {
	ts, calls := worksServer(t, 3, 4, -1)
	dir := t.TempDir()

	var out, errw bytes.Buffer
	err := runWith(context.Background(), testRunConfig(ts.URL, dir), pairs.Default(), &out, &errw)
	require.NoError(t, err)
	assert.Equal(t, int32(10), atomic.LoadInt32(calls))

	summary := readRows(t, filepath.Join(dir, report.SummaryFile))
	require.Len(t, summary, 11)
	for i, p := range pairs.Default() {
		row := summary[i+1]
		assert.Equal(t, p.Left, row[0])
		assert.Equal(t, p.Right, row[1])
		if i == 3 {
			assert.Equal(t, "4", row[2])
		} else {
			assert.Equal(t, "0", row[2], "pair %d", i+1)
		}
	}

	works := readRows(t, filepath.Join(dir, report.WorksFile))
	require.Len(t, works, 5)
	for _, row := range works[1:] {
		assert.Equal(t, pairs.Default()[3].Left, row[0])
		assert.Equal(t, "Venue", row[6])
	}
	assert.Empty(t, errw.String())
	assert.Contains(t, out.String(), "wrote:")
	assert.Contains(t, out.String(), "(4 co-occurring works)")
}

func TestRunWithServiceUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	base := ts.URL
	ts.Close()
	dir := t.TempDir()

	var out, errw bytes.Buffer
	err := runWith(context.Background(), testRunConfig(base, dir), pairs.Default(), &out, &errw)
	require.NoError(t, err, "query failures never fail the run")

	summary := readRows(t, filepath.Join(dir, report.SummaryFile))
	require.Len(t, summary, 11)
	for _, row := range summary[1:] {
		assert.Equal(t, "0", row[2])
	}

	works := readRows(t, filepath.Join(dir, report.WorksFile))
	assert.Len(t, works, 1, "header only")

	assert.Contains(t, errw.String(), "10 of 10 queries failed")
}

func TestRunWithOneFailingPair(t *testing.T) {
	ts, _ := worksServer(t, 5, 2, 2)
	dir := t.TempDir()

	var out, errw bytes.Buffer
	require.NoError(t, runWith(context.Background(), testRunConfig(ts.URL, dir), pairs.Default(), &out, &errw))

	summary := readRows(t, filepath.Join(dir, report.SummaryFile))
	assert.Equal(t, "0", summary[3][2])
	assert.Equal(t, "2", summary[6][2])
	assert.Contains(t, errw.String(), "1 of 10 queries failed")
	assert.Contains(t, errw.String(), "HTTP 503")
}

func TestRunWithIsIdempotent(t *testing.T) {
	ts, _ := worksServer(t, 0, 3, -1)
	dir := t.TempDir()
	cfg := testRunConfig(ts.URL, dir)

	require.NoError(t, runWith(context.Background(), cfg, pairs.Default(), &bytes.Buffer{}, &bytes.Buffer{}))
	summary1, err := os.ReadFile(filepath.Join(dir, report.SummaryFile))
	require.NoError(t, err)
	works1, err := os.ReadFile(filepath.Join(dir, report.WorksFile))
	require.NoError(t, err)

	require.NoError(t, runWith(context.Background(), cfg, pairs.Default(), &bytes.Buffer{}, &bytes.Buffer{}))
	summary2, err := os.ReadFile(filepath.Join(dir, report.SummaryFile))
	require.NoError(t, err)
	works2, err := os.ReadFile(filepath.Join(dir, report.WorksFile))
	require.NoError(t, err)

	assert.Equal(t, summary1, summary2)
	assert.Equal(t, works1, works2)
}

func TestRunWithUnwritableOutput(t *testing.T) {
	ts, _ := worksServer(t, -1, 0, -1)
	dir := filepath.Join(t.TempDir(), "missing")

	err := runWith(context.Background(), testRunConfig(ts.URL, dir), pairs.Default(), &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), report.SummaryFile)
}

func TestRunWithCSL(t *testing.T) {
	ts, _ := worksServer(t, 1, 2, -1)
	dir := t.TempDir()
	cfg := testRunConfig(ts.URL, dir)
	cfg.Report.CSLPath = filepath.Join(dir, "works.yaml")

	var out bytes.Buffer
	require.NoError(t, runWith(context.Background(), cfg, pairs.Default(), &out, &bytes.Buffer{}))

	data, err := os.ReadFile(cfg.Report.CSLPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "id: W0")
	assert.Contains(t, string(data), "id: W1")
	assert.Contains(t, out.String(), "CSL-YAML bibliography")
}

// --- configuration ---

func TestResolveMailto(t *testing.T) {
	withSecret := secrets.Secrets{secrets.OpenAlexEmail: "secret@example.com"}
	tests := []struct {
		name       string
		args       []string
		configured string
		secrets    secrets.Secrets
		want       string
	}{
		{"argument wins", []string{" arg@example.com "}, "cfg@example.com", withSecret, "arg@example.com"},
		{"config next", nil, "cfg@example.com", withSecret, "cfg@example.com"},
		{"secret next", nil, "", withSecret, "secret@example.com"},
		{"placeholder last", nil, "", secrets.Secrets{}, DefaultMailto},
		{"nil secrets", nil, "", nil, DefaultMailto},
		{"argument not validated", []string{"not-an-email"}, "", nil, "not-an-email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveMailto(tt.args, tt.configured, tt.secrets))
		})
	}
}

func TestRunConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := runConfigFrom(v)
	assert.Equal(t, ".", cfg.Report.OutputDir)
	assert.Empty(t, cfg.Report.CSLPath)
	assert.Equal(t, openalex.DefaultTimeout, cfg.HTTP.Timeout)
	assert.Equal(t, defaultInterval, cfg.HTTP.Interval)
	assert.Equal(t, defaultUserAgent, cfg.HTTP.UserAgent)
	assert.Equal(t, openalex.DefaultBaseURL, cfg.OpenAlex.BaseURL)
	assert.Equal(t, openalex.MaxPerPage, cfg.OpenAlex.PerPage)
	assert.Empty(t, cfg.OpenAlex.Mailto)
}

func TestRunConfigOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set(keyMailto, " me@example.org ")
	v.Set(keyOutputDir, "reports")
	v.Set(keyTimeout, "30s")
	v.Set(keyPerPage, 50)

	cfg := runConfigFrom(v)
	assert.Equal(t, "me@example.org", cfg.OpenAlex.Mailto)
	assert.Equal(t, "reports", cfg.Report.OutputDir)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 50, cfg.OpenAlex.PerPage)
}

func TestRunConfigFromEnvironment(t *testing.T) {
	t.Setenv("COOCCURRENCE_MAILTO", " env@example.org ")
	t.Setenv("COOCCURRENCE_OUTPUT_DIR", "from-env")

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("COOCCURRENCE")
	v.AutomaticEnv()

	cfg := runConfigFrom(v)
	assert.Equal(t, "env@example.org", cfg.OpenAlex.Mailto)
	assert.Equal(t, "from-env", cfg.Report.OutputDir)
	assert.Equal(t, "env@example.org", resolveMailto(nil, cfg.OpenAlex.Mailto, nil))
}

func TestRunConfigFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	origWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origWD) })
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("COOCCURRENCE_MAILTO=dotenv@example.org\n"), 0o644))
	// Registered so t.Setenv restores the variable after godotenv sets it.
	t.Setenv("COOCCURRENCE_MAILTO", "")
	os.Unsetenv("COOCCURRENCE_MAILTO")

	v := viper.New()
	loadEnv(v)

	cfg := runConfigFrom(v)
	assert.Equal(t, "dotenv@example.org", cfg.OpenAlex.Mailto)
}

// --- commands ---

func TestPairsCommand(t *testing.T) {
	var out bytes.Buffer
	pairsCmd.SetOut(&out)
	defer pairsCmd.SetOut(nil)

	pairsCmd.Run(pairsCmd, nil)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, ` 1  "transverse mass" AND "Euclidean norm (L2 norm)"`, lines[0])
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "cooccurrence dev\n", out.String())
}
