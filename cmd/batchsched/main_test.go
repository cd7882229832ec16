package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runCLI(t *testing.T, ctx context.Context, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	if err := run(ctx, append([]string{"-log-level", "error"}, args...), &out); err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	return out.String()
}

const batchFile = "1, 0, 5, 1\n2, 2, 3, 2\n3, 4, 1, 3\n"

func TestRun_FCFS(t *testing.T) {
	out := runCLI(t, context.Background(), writeFile(t, "batch.txt", batchFile), "FCFS")
	want := "PID ORDER OF EXECUTION\n1\n2\n3\n" +
		"Average Process Turnaround Time: 5.33\n" +
		"Average Process Wait Time: 2.33\n"
	if out != want {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRun_Diagnostics(t *testing.T) {
	batch := writeFile(t, "batch.txt", batchFile)
	missing := filepath.Join(t.TempDir(), "missing.txt")

	testCases := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "unknown algorithm",
			args: []string{batch, "RoundRobin"},
			want: "Valid process scheduling algorithms are 'FCFS', 'ShortestFirst', and 'Priority'.",
		},
		{
			name: "missing file",
			args: []string{missing, "FCFS"},
			want: "File " + missing + " does not exist.",
		},
		{
			name: "missing arguments",
			args: []string{batch},
			want: "Please enter arguments as: 'BatchfileName.txt' 'SchedulingAlgorithm'",
		},
		{
			name: "empty batch",
			args: []string{writeFile(t, "empty.txt", ""), "Priority"},
			want: "has no jobs.",
		},
		{
			name: "malformed record",
			args: []string{writeFile(t, "bad.txt", "1,0,5,1\n2,two,3,2\n"), "FCFS"},
			want: "is malformed",
		},
		{
			name: "invalid job",
			args: []string{writeFile(t, "zero.txt", "1,0,0,1\n"), "FCFS"},
			want: "is invalid",
		},
		{
			name: "import without database",
			args: []string{"-import", batch, "nightly", "FCFS"},
			want: "-import requires -db",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := runCLI(t, context.Background(), tc.args...)
			if !strings.Contains(out, tc.want) {
				t.Fatalf("expected %q in output:\n%s", tc.want, out)
			}
			if strings.Contains(out, "PID ORDER OF EXECUTION") {
				t.Fatalf("schedule computed despite error:\n%s", out)
			}
		})
	}
}

func TestRun_Compare(t *testing.T) {
	out := runCLI(t, context.Background(), "-compare", writeFile(t, "batch.txt", batchFile))
	for _, header := range []string{"=== FCFS ===", "=== ShortestFirst ===", "=== Priority ==="} {
		if !strings.Contains(out, header) {
			t.Errorf("expected %q in output:\n%s", header, out)
		}
	}
	if strings.Count(out, "PID ORDER OF EXECUTION") != 3 {
		t.Errorf("expected three reports:\n%s", out)
	}
}

func TestRun_TableFormat(t *testing.T) {
	out := runCLI(t, context.Background(), "-format", "table", writeFile(t, "batch.txt", batchFile), "ShortestFirst")
	if !strings.Contains(out, "Gantt schedule") || !strings.Contains(out, "Schedule table") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRun_ConfigAlgorithm(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "algorithm: Priority\nlog:\n  level: error\n")
	out := runCLI(t, context.Background(), "-config", cfg, writeFile(t, "batch.txt", batchFile))
	if !strings.HasPrefix(out, "PID ORDER OF EXECUTION\n1\n2\n3\n") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRun_Database(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "batches.db")
	batch := writeFile(t, "batch.txt", "1,0,8,0\n2,1,4,0\n3,2,9,0\n4,3,5,0\n")

	out := runCLI(t, context.Background(), "-db", dsn, "-import", batch, "nightly", "ShortestFirst")
	want := "PID ORDER OF EXECUTION\n1\n2\n4\n1\n3\n" +
		"Average Process Turnaround Time: 13.00\n" +
		"Average Process Wait Time: 6.50\n"
	if out != want {
		t.Fatalf("unexpected output:\n%s", out)
	}

	// 第二次直接从数据库读取
	if again := runCLI(t, context.Background(), "-db", dsn, "nightly", "ShortestFirst"); again != want {
		t.Fatalf("unexpected output from stored batch:\n%s", again)
	}

	out = runCLI(t, context.Background(), "-db", dsn, "weekly", "FCFS")
	if !strings.Contains(out, "Batch weekly does not exist in the database.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRun_ListBatches(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "batches.db")
	batch := writeFile(t, "batch.txt", batchFile)

	if out := runCLI(t, context.Background(), "-db", dsn, "-list"); out != "" {
		t.Fatalf("expected no batches, got:\n%s", out)
	}

	runCLI(t, context.Background(), "-db", dsn, "-import", batch, "weekly", "FCFS")
	runCLI(t, context.Background(), "-db", dsn, "-import", batch, "nightly", "FCFS")
	if out := runCLI(t, context.Background(), "-db", dsn, "-list"); out != "nightly\nweekly\n" {
		t.Fatalf("unexpected batch list:\n%s", out)
	}

	if out := runCLI(t, context.Background(), "-list"); !strings.Contains(out, "-list requires -db") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRun_ImportMissingFile(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "batches.db")
	missing := filepath.Join(t.TempDir(), "nope.txt")

	out := runCLI(t, context.Background(), "-db", dsn, "-import", missing, "nightly", "FCFS")
	if !strings.Contains(out, "File "+missing+" does not exist.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRun_ServeStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	out := runCLI(t, ctx, "-cron", "@every 1h", "-listen", "127.0.0.1:0",
		writeFile(t, "batch.txt", batchFile), "FCFS")
	if strings.Count(out, "PID ORDER OF EXECUTION") != 1 {
		t.Fatalf("expected one initial report:\n%s", out)
	}
}

func TestRun_FlagErrors(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"-no-such-flag"}, &out); err == nil {
		t.Fatal("expected an error for an unknown flag")
	}
	if err := run(context.Background(), []string{"-h"}, &out); err != nil {
		t.Fatalf("help should not fail: %v", err)
	}
	if err := run(context.Background(), []string{"-preempt", "never", "x", "FCFS"}, &out); err == nil {
		t.Fatal("expected an error for an unknown preempt policy")
	}
}
