package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/johnwards/shopdb/internal/config"
	"github.com/johnwards/shopdb/internal/database"
	"github.com/johnwards/shopdb/internal/logging"
	"github.com/johnwards/shopdb/internal/report"
	"github.com/johnwards/shopdb/internal/runner"
	"github.com/johnwards/shopdb/internal/store"
)

func newRunner(t *testing.T, path, format string) (*runner.Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, logs bytes.Buffer
	cfg := config.Config{DBPath: path, LogLevel: "debug", Format: format}
	return runner.New(cfg, logging.New(&logs, cfg.LogLevel), &out), &out, &logs
}

func countRows(t *testing.T, path string) map[string]int {
	t.Helper()
	db, err := database.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = db.Close() }()

	counts := map[string]int{}
	for _, table := range database.Tables {
		n, err := store.NewSQLiteCatalogStore(db).Count(context.Background(), table)
		if err != nil {
			t.Fatalf("count %s: %v", table.Name, err)
		}
		counts[table.Name] = n
	}
	return counts
}

type jsonDoc struct {
	Title string           `json:"title"`
	Rows  []map[string]any `json:"rows"`
	Error string           `json:"error"`
}

func TestRunSeedsAndPrintsReports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mydb.db")
	r, out, logs := newRunner(t, path, "table")

	r.Run(context.Background())

	got := out.String()
	for _, want := range []string{
		"Список клиентов с общей суммой их покупок:",
		"Список клиентов, которые купили телефон:",
		"Список товаров с количеством их заказов:",
		"Общая сумма покупок",
		"Количество заказов",
		"10636.76",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "query failed") {
		t.Errorf("unexpected failed report:\n%s", got)
	}

	if !strings.Contains(logs.String(), "database disconnected") {
		t.Errorf("expected disconnect log, got:\n%s", logs.String())
	}
	if !strings.Contains(logs.String(), "table=Orders rows=11") {
		t.Errorf("expected fill log with verified row count, got:\n%s", logs.String())
	}

	want := map[string]int{"Clients": 4, "Products": 6, "Orders": 11}
	counts := countRows(t, path)
	for table, n := range want {
		if counts[table] != n {
			t.Errorf("%s count = %d, want %d", table, counts[table], n)
		}
	}
}

func TestRunTwiceReseeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mydb.db")

	for i := 0; i < 2; i++ {
		r, out, _ := newRunner(t, path, "table")
		r.Run(context.Background())
		if strings.Contains(out.String(), "query failed") {
			t.Fatalf("run %d printed a failed report:\n%s", i+1, out.String())
		}
	}

	counts := countRows(t, path)
	if counts["Orders"] != 11 {
		t.Errorf("Orders count = %d after second run, want 11", counts["Orders"])
	}
}

func TestRunJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mydb.db")
	r, out, _ := newRunner(t, path, "json")

	r.Run(context.Background())

	got := out.String()
	dec := json.NewDecoder(strings.NewReader(got))
	var docs []jsonDoc
	for {
		var d jsonDoc
		if err := dec.Decode(&d); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			t.Fatalf("decode document %d: %v\n%s", len(docs)+1, err, got)
		}
		docs = append(docs, d)
	}
	if len(docs) != len(report.Queries) {
		t.Fatalf("documents = %d, want %d", len(docs), len(report.Queries))
	}
	for i, d := range docs {
		if d.Title != report.Queries[i].Title {
			t.Errorf("document %d title = %q, want %q", i, d.Title, report.Queries[i].Title)
		}
		if d.Rows == nil {
			t.Errorf("document %d has null rows", i)
		}
	}

	if !strings.Contains(got, `"Клиент": "Иван"`) {
		t.Errorf("json output missing client record:\n%s", got)
	}
	if !strings.Contains(got, `"Количество заказов": 3`) {
		t.Errorf("json output missing phone count:\n%s", got)
	}
}

func TestRunJSONFailedReportsHaveEmptyRows(t *testing.T) {
	r, out, _ := newRunner(t, filepath.Join(t.TempDir(), "mydb.db"), "json")
	ctx := context.Background()

	if err := r.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer func() { _ = r.Disconnect() }()

	if err := r.Report(ctx); !errors.Is(err, store.ErrQuery) {
		t.Fatalf("Report error = %v, want ErrQuery", err)
	}

	dec := json.NewDecoder(out)
	n := 0
	for {
		var d jsonDoc
		if err := dec.Decode(&d); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			t.Fatalf("decode document %d: %v", n+1, err)
		}
		n++
		if d.Rows == nil {
			t.Errorf("failed report %q has null rows", d.Title)
		}
		if len(d.Rows) != 0 {
			t.Errorf("failed report %q has %d rows, want 0", d.Title, len(d.Rows))
		}
		if !strings.Contains(d.Error, "query failed") {
			t.Errorf("failed report %q error = %q", d.Title, d.Error)
		}
	}
	if n != len(report.Queries) {
		t.Errorf("documents = %d, want %d", n, len(report.Queries))
	}
}

func TestConnectFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	r, out, logs := newRunner(t, filepath.Join(blocker, "mydb.db"), "table")
	ctx := context.Background()

	// Run logs the failure and returns normally, skipping seed and report.
	r.Run(ctx)
	if !strings.Contains(logs.String(), "connect failed") {
		t.Errorf("expected connect failure log, got:\n%s", logs.String())
	}
	for _, skipped := range []string{"table created", "seeding incomplete", "report failed"} {
		if strings.Contains(logs.String(), skipped) {
			t.Errorf("run continued past a failed connect (%q logged):\n%s", skipped, logs.String())
		}
	}

	if err := r.Connect(); err == nil {
		t.Error("expected Connect to return the open error")
	}
	if err := r.Seed(ctx); !errors.Is(err, runner.ErrNotConnected) {
		t.Errorf("Seed error = %v, want ErrNotConnected", err)
	}
	if err := r.Report(ctx); !errors.Is(err, runner.ErrNotConnected) {
		t.Errorf("Report error = %v, want ErrNotConnected", err)
	}
	if err := r.Disconnect(); err != nil {
		t.Errorf("Disconnect on unconnected runner: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no report output, got:\n%s", out.String())
	}
}

func TestReportWithoutSeedFails(t *testing.T) {
	r, out, logs := newRunner(t, filepath.Join(t.TempDir(), "mydb.db"), "table")
	ctx := context.Background()

	if err := r.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer func() { _ = r.Disconnect() }()

	err := r.Report(ctx)
	if !errors.Is(err, store.ErrQuery) {
		t.Fatalf("Report error = %v, want ErrQuery", err)
	}

	if n := strings.Count(out.String(), "(query failed"); n != 3 {
		t.Errorf("failed reports printed = %d, want 3:\n%s", n, out.String())
	}
	if strings.Contains(out.String(), "(0 rows)") {
		t.Error("failed query rendered as an empty result")
	}
	if !strings.Contains(logs.String(), "report failed") {
		t.Errorf("expected report failure log, got:\n%s", logs.String())
	}
}

func TestReportUnknownFormat(t *testing.T) {
	r, _, _ := newRunner(t, filepath.Join(t.TempDir(), "mydb.db"), "xml")
	ctx := context.Background()

	if err := r.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer func() { _ = r.Disconnect() }()

	if err := r.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := r.Report(ctx); err == nil {
		t.Fatal("expected render error for unknown format")
	}
}

func TestRunContinuesAfterSeedFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mydb.db")

	// A view squatting on the Orders name cannot be dropped as a table or
	// filled, so seeding fails part way.
	db, err := database.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.Exec(`CREATE VIEW "Orders" AS SELECT 1 AS x`); err != nil {
		t.Fatalf("create view: %v", err)
	}
	_ = db.Close()

	first, _, _ := newRunner(t, path, "table")
	ctx := context.Background()

	if err := first.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := first.Seed(ctx); err == nil {
		t.Error("expected seed error")
	}
	_ = first.Disconnect()

	r, out, logs := newRunner(t, path, "table")
	r.Run(ctx)
	if !strings.Contains(logs.String(), "seeding incomplete") {
		t.Errorf("expected seeding failure log, got:\n%s", logs.String())
	}
	if !strings.Contains(logs.String(), "database disconnected") {
		t.Errorf("run did not reach disconnect:\n%s", logs.String())
	}
	if !strings.Contains(out.String(), "(query failed") {
		t.Errorf("expected failed reports, got:\n%s", out.String())
	}
}

func TestDisconnectTwice(t *testing.T) {
	r, _, _ := newRunner(t, filepath.Join(t.TempDir(), "mydb.db"), "table")

	if err := r.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := r.Disconnect(); err != nil {
		t.Fatalf("first disconnect: %v", err)
	}
	if err := r.Disconnect(); err != nil {
		t.Fatalf("second disconnect: %v", err)
	}
}
