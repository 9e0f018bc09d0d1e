package lox

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFixtures runs every golden scenario from testdata/fixtures/scenarios.yaml
// through Run, checking either the exact printed output or the expected
// diagnostic kind/substrings.
func TestFixtures(t *testing.T) {
	fixtures, err := LoadFixtures("../../testdata/fixtures/scenarios.yaml")
	if err != nil {
		t.Fatalf("LoadFixtures: %v", err)
	}
	if len(fixtures) == 0 {
		t.Fatal("expected at least one fixture")
	}

	for _, fx := range fixtures {
		t.Run(fx.Name, func(t *testing.T) {
			var buf bytes.Buffer
			result := Run(fx.Source, WithWriter(&buf))

			if fx.WantDiagKind != "" {
				if len(result.Diagnostics) == 0 {
					t.Fatalf("expected a diagnostic of kind %s, got none", fx.WantDiagKind)
				}
				d := result.Diagnostics[0]
				if string(d.Kind) != fx.WantDiagKind {
					t.Fatalf("got diagnostic kind %s, want %s", d.Kind, fx.WantDiagKind)
				}
				for _, sub := range fx.WantDiagSub {
					if !strings.Contains(d.Message, sub) {
						t.Fatalf("diagnostic message %q does not contain %q", d.Message, sub)
					}
				}
				return
			}

			if len(result.Diagnostics) != 0 {
				t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
			}
			if result.ExitCode != ExitOK {
				t.Fatalf("got exit code %d, want ExitOK", result.ExitCode)
			}
			if buf.String() != fx.WantOutput {
				t.Fatalf("got output %q, want %q", buf.String(), fx.WantOutput)
			}
		})
	}
}

// TestRunSnapshotsUncuratedOutput exercises Run against a scenario with no
// hand-written want_output, snapshotting the printed output with go-snaps.
func TestRunSnapshotsUncuratedOutput(t *testing.T) {
	var buf bytes.Buffer
	result := Run(`
		class Shape {
			area() { return 0; }
			describe() { print "area="; print this.area(); }
		}
		class Circle : Shape {
			init(r) { this.r = r; }
			area() { return 3.14 * this.r * this.r; }
		}
		Circle(2).describe();
	`, WithWriter(&buf))
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	snaps.MatchSnapshot(t, buf.String())
}

func TestRunReturnsExitDataErrOnParseFailure(t *testing.T) {
	result := Run(`print ;`)
	if result.ExitCode != ExitDataErr {
		t.Fatalf("got exit code %d, want ExitDataErr", result.ExitCode)
	}
	if len(result.Diagnostics) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
}

func TestRunReturnsExitRuntimeOnRuntimeFailure(t *testing.T) {
	result := Run(`print 1 / 0;`)
	if result.ExitCode != ExitRuntime {
		t.Fatalf("got exit code %d, want ExitRuntime", result.ExitCode)
	}
}

func TestParseASTReturnsStatementsForValidSource(t *testing.T) {
	stmts, diags := ParseAST(`var a = 1; print a;`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
}

func TestParseASTReportsSyntaxErrors(t *testing.T) {
	_, diags := ParseAST(`var a = ;`)
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
}

func TestREPLPersistsDeclarationsAcrossLines(t *testing.T) {
	var buf bytes.Buffer
	repl := NewREPL(WithWriter(&buf))

	if diags := repl.EvalLine("var x = 1"); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if diags := repl.EvalLine("x = x + 1"); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if diags := repl.EvalLine("x"); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if got := buf.String(); got != "2\n" {
		t.Fatalf("got %q, want %q", got, "2\n")
	}
}

func TestREPLAutoPrintsBareExpressions(t *testing.T) {
	var buf bytes.Buffer
	repl := NewREPL(WithWriter(&buf))

	if diags := repl.EvalLine(`1 + 2`); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if got := buf.String(); got != "3\n" {
		t.Fatalf("got %q, want %q", got, "3\n")
	}
}

func TestREPLDoesNotDoubleAppendSemicolon(t *testing.T) {
	var buf bytes.Buffer
	repl := NewREPL(WithWriter(&buf))

	if diags := repl.EvalLine(`print "hi";`); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if got := buf.String(); got != "hi\n" {
		t.Fatalf("got %q", got)
	}
}

func TestREPLReportsUndefinedVariable(t *testing.T) {
	repl := NewREPL(WithWriter(&bytes.Buffer{}))
	diags := repl.EvalLine("nope")
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for an undefined variable")
	}
}

func TestREPLEmptyLineIsNoop(t *testing.T) {
	repl := NewREPL(WithWriter(&bytes.Buffer{}))
	if diags := repl.EvalLine("   "); diags != nil {
		t.Fatalf("expected nil diagnostics for a blank line, got %v", diags)
	}
}

func TestWithMaxCallDepthLowersStackOverflowThreshold(t *testing.T) {
	result := Run(`
		fun recurse(n) { return recurse(n + 1); }
		recurse(0);
	`, WithMaxCallDepth(4))
	if len(result.Diagnostics) == 0 {
		t.Fatal("expected a stack overflow diagnostic")
	}
	if got := result.Diagnostics[0].Kind; string(got) != "StackOverflow" {
		t.Fatalf("got kind %s, want StackOverflow", got)
	}
}
