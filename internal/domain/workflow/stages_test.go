package workflow

import (
	"errors"
	"testing"
)

func TestStages_ValidateTransition(t *testing.T) {
	t.Parallel()

	stages := Stages{"dev", "test", "stage", "prod"}

	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{"single forward step", "dev", "test", nil},
		{"next single step", "test", "stage", nil},
		{"final step", "stage", "prod", nil},
		{"skipped stage", "dev", "stage", ErrSkippedStage},
		{"skipped two stages", "dev", "prod", ErrSkippedStage},
		{"backward", "test", "dev", ErrBackward},
		{"self transition", "test", "test", ErrBackward},
		{"unknown from", "qa", "test", ErrUnknownStage},
		{"unknown to", "dev", "canary", ErrUnknownStage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := stages.ValidateTransition(tt.from, tt.to)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateTransition(%s, %s) = %v, want nil", tt.from, tt.to, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateTransition(%s, %s) = %v, want %v", tt.from, tt.to, err, tt.wantErr)
			}
			var te *TransitionError
			if !errors.As(err, &te) {
				t.Fatal("error is not a *TransitionError")
			}
			if te.From != tt.from || te.To != tt.to {
				t.Errorf("TransitionError endpoints = %q -> %q, want %q -> %q", te.From, te.To, tt.from, tt.to)
			}
		})
	}
}

func TestStages_ValidateTransition_CaseInsensitive(t *testing.T) {
	t.Parallel()

	stages := Stages{"Dev", "Test"}
	if err := stages.ValidateTransition("dev", "TEST"); err != nil {
		t.Errorf("case-insensitive transition failed: %v", err)
	}
}

func TestStages_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		stages  Stages
		wantErr bool
	}{
		{"default stages", DefaultStages, false},
		{"single stage", Stages{"prod"}, false},
		{"empty list", Stages{}, true},
		{"duplicate", Stages{"dev", "test", "dev"}, true},
		{"duplicate differing case", Stages{"dev", "DEV"}, true},
		{"blank name", Stages{"dev", " "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.stages.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStages_Next(t *testing.T) {
	t.Parallel()

	stages := Stages{"dev", "test", "prod"}

	if next, ok := stages.Next("dev"); !ok || next != "test" {
		t.Errorf("Next(dev) = %q, %v", next, ok)
	}
	if _, ok := stages.Next("prod"); ok {
		t.Error("Next(prod) should have no successor")
	}
	if _, ok := stages.Next("missing"); ok {
		t.Error("Next(missing) should not resolve")
	}
}
