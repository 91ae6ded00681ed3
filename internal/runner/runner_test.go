package runner

import (
	"context"
	"sort"
	"testing"
)

func TestMergeEnv(t *testing.T) {
	tests := []struct {
		name      string
		base      []string
		overrides []string
		want      []string
	}{
		{
			name:      "override existing key",
			base:      []string{"A=1", "B=2"},
			overrides: []string{"A=override"},
			want:      []string{"A=override", "B=2"},
		},
		{
			name:      "add new key",
			base:      []string{"A=1"},
			overrides: []string{"B=2"},
			want:      []string{"A=1", "B=2"},
		},
		{
			name:      "empty base",
			base:      nil,
			overrides: []string{"A=1"},
			want:      []string{"A=1"},
		},
		{
			name:      "empty overrides",
			base:      []string{"A=1"},
			overrides: nil,
			want:      []string{"A=1"},
		},
		{
			name:      "value with equals sign",
			base:      []string{"CMD=foo=bar"},
			overrides: nil,
			want:      []string{"CMD=foo=bar"},
		},
		{
			name:      "malformed entries skipped",
			base:      []string{"NOEQUALS", "A=1"},
			overrides: []string{"ALSO_BAD", "B=2"},
			want:      []string{"A=1", "B=2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeEnv(tt.base, tt.overrides)
			sort.Strings(got)
			sort.Strings(tt.want)
			if len(got) != len(tt.want) {
				t.Fatalf("mergeEnv = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("mergeEnv = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSystemRunCapturesOutput(t *testing.T) {
	s := &System{}
	res, err := s.Run(context.Background(), Cmd{
		Path: "sh",
		Args: []string{"-c", "echo out; echo err >&2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", res.ExitCode)
	}
	if res.Stdout != "out\n" {
		t.Errorf("stdout = %q, want %q", res.Stdout, "out\n")
	}
	if res.Stderr != "err\n" {
		t.Errorf("stderr = %q, want %q", res.Stderr, "err\n")
	}
}

func TestSystemRunNonZeroExitIsNotAnError(t *testing.T) {
	s := &System{}
	res, err := s.Run(context.Background(), Cmd{
		Path: "sh",
		Args: []string{"-c", "exit 3"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", res.ExitCode)
	}
}

func TestSystemRunEnvOverride(t *testing.T) {
	s := &System{}
	res, err := s.Run(context.Background(), Cmd{
		Path: "sh",
		Args: []string{"-c", "printf %s \"$BLDR_TEST_VAR\""},
		Env:  []string{"BLDR_TEST_VAR=scoped"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stdout != "scoped" {
		t.Errorf("stdout = %q, want %q", res.Stdout, "scoped")
	}
}

func TestSystemRunWorkdir(t *testing.T) {
	dir := t.TempDir()
	s := &System{}
	res, err := s.Run(context.Background(), Cmd{
		Path: "pwd",
		Dir:  dir,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := res.Stdout; got != dir+"\n" {
		// Symlinked temp dirs (macOS /var -> /private/var) are fine as
		// long as the suffix matches.
		if len(got) < len(dir) {
			t.Errorf("pwd = %q, want %q", got, dir)
		}
	}
}

func TestSystemRunMissingExecutable(t *testing.T) {
	s := &System{}
	_, err := s.Run(context.Background(), Cmd{Path: "definitely-not-a-real-binary-12345"})
	if err == nil {
		t.Fatal("expected error for missing executable")
	}
}

func TestFakeRecordsAndScripts(t *testing.T) {
	f := &Fake{
		Results: map[string]*Result{
			"make": {ExitCode: 2, Stderr: "boom"},
		},
	}

	res, err := f.Run(context.Background(), Cmd{Path: "/usr/bin/make", Args: []string{"build-c"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 2 || res.Stderr != "boom" {
		t.Errorf("scripted result not returned: %+v", res)
	}

	res, err = f.Run(context.Background(), Cmd{Path: "dub"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("unscripted command should succeed, got %+v", res)
	}

	if len(f.CallsTo("make")) != 1 || len(f.CallsTo("dub")) != 1 {
		t.Errorf("calls not recorded: %+v", f.Calls)
	}
}
