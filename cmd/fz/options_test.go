package main

import (
	"testing"

	"github.com/fz-finder/fz/internal/pattern"
)

func TestParseOptionsBasics(t *testing.T) {
	opts, err := ParseOptions([]string{"-q", "foo", "-i", "-m", "--header-lines=2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Query != "foo" {
		t.Fatalf("expected query 'foo', got %q", opts.Query)
	}
	if opts.CaseMode != pattern.CaseIgnore {
		t.Fatal("expected -i to select case-ignore mode")
	}
	if !opts.Multi {
		t.Fatal("expected -m to enable multi-select")
	}
	if opts.HeaderLines != 2 {
		t.Fatalf("expected header-lines=2, got %d", opts.HeaderLines)
	}
}

func TestParseOptionsFilterAndNth(t *testing.T) {
	opts, err := ParseOptions([]string{"-f", "bar", "--nth=2,-1", "--delimiter=,"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.FilterSet || opts.Filter != "bar" {
		t.Fatalf("expected filter 'bar', got %+v", opts)
	}
	if len(opts.Nth) != 2 {
		t.Fatalf("expected 2 nth ranges, got %d", len(opts.Nth))
	}
	if opts.Delimiter.Str == nil || *opts.Delimiter.Str != "," {
		t.Fatalf("expected delimiter ',', got %+v", opts.Delimiter)
	}
}

func TestParseOptionsAlgoSelection(t *testing.T) {
	opts, err := ParseOptions([]string{"--algo=v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.ForceV1 {
		t.Fatal("expected --algo=v1 to set ForceV1")
	}

	opts, err = ParseOptions([]string{"--algo", "v2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.ForceV1 {
		t.Fatal("expected --algo v2 to leave ForceV1 false")
	}

	if _, err := ParseOptions([]string{"--algo=bogus"}); err == nil {
		t.Fatal("expected an error for an unrecognized --algo value")
	}
}

func TestParseOptionsPrintQuery(t *testing.T) {
	opts, err := ParseOptions([]string{"-q", "abc", "--print-query"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.PrintQuery {
		t.Fatal("expected --print-query to set PrintQuery")
	}
}

func TestParseOptionsRejectsUnknownFlag(t *testing.T) {
	if _, err := ParseOptions([]string{"--does-not-exist"}); err == nil {
		t.Fatal("expected an error for an unrecognized flag")
	}
}

func TestParseOptionsRejectsMissingQueryValue(t *testing.T) {
	if _, err := ParseOptions([]string{"-q"}); err == nil {
		t.Fatal("expected an error when -q is given with no value")
	}
}
