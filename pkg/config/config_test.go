package config

import (
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := Validate(c); err != nil {
		t.Fatalf("Default() produced an invalid config: %v", err)
	}
}

func TestLoadPartialYAMLFillsDefaults(t *testing.T) {
	c, err := Load([]byte("minPopSize: 50\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.MinPopSize != 50 {
		t.Errorf("MinPopSize = %d, want 50", c.MinPopSize)
	}
	if c.GenerationSize != DefaultGenerationSize {
		t.Errorf("GenerationSize = %d, want default %d", c.GenerationSize, DefaultGenerationSize)
	}
}

func TestLoadRejectsInvalidRatio(t *testing.T) {
	_, err := Load([]byte("targetFeasibleRatio: 1.5\n"))
	if err == nil {
		t.Fatal("expected an error for targetFeasibleRatio > 1")
	}
}

func TestWithOptionsOverrideDefaults(t *testing.T) {
	c, err := New(
		WithMinPopSize(10),
		WithGenerationSize(15),
		WithTimeLimit(30*time.Second),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.MinPopSize != 10 || c.GenerationSize != 15 || c.TimeLimit != 30*time.Second {
		t.Errorf("unexpected config: %+v", c)
	}
}

func TestNewRejectsInvalidOption(t *testing.T) {
	_, err := New(WithMinPopSize(-1))
	if err == nil {
		t.Fatal("expected an error for negative MinPopSize")
	}
}
