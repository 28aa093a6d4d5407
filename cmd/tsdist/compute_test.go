package main

import (
	"testing"

	"github.com/example/go-tsdist-gpu/internal/config"
	"github.com/example/go-tsdist-gpu/internal/measure"
)

func TestParseFloatList(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []float32
		wantErr bool
	}{
		{"simple", "1,2,3", []float32{1, 2, 3}, false},
		{"with spaces", " 1 , 2 , 3 ", []float32{1, 2, 3}, false},
		{"trailing comma ignored", "1,2,", []float32{1, 2}, false},
		{"negative and decimal", "-1.5,0,2.25", []float32{-1.5, 0, 2.25}, false},
		{"empty string", "", nil, true},
		{"all whitespace", "  ,  ,  ", nil, true},
		{"non-numeric", "1,abc,3", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFloatList(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseFloatList(%q) = %v, nil; want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFloatList(%q) error = %v", tt.raw, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseFloatList(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseFloatList(%q)[%d] = %v, want %v", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestResolveMeasure(t *testing.T) {
	cfg := config.ComputeConfig{GapPenalty: 1, Epsilon: 2, Stiffness: 3, Penalty: 4, ADTWWeight: 5}

	tests := []struct {
		name     string
		measure  string
		wantKind measure.Kind
		wantErr  bool
	}{
		{"dtw", "DTW", measure.DTWKind, false},
		{"wdtw", "wdtw", measure.WDTWKind, false},
		{"adtw", "adtw", measure.ADTWKind, false},
		{"erp", "erp", measure.ERPKind, false},
		{"lcss", "lcss", measure.LCSSKind, false},
		{"msm", "msm", measure.MSMKind, false},
		{"twe", "twe", measure.TWEKind, false},
		{"unknown", "bogus", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := resolveMeasure(tt.measure, cfg, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("resolveMeasure(%q) = nil error, want error", tt.measure)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveMeasure(%q) error = %v", tt.measure, err)
			}
			if m.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", m.Kind(), tt.wantKind)
			}
		})
	}
}

func TestResolveMeasure_WDTWCarriesWeights(t *testing.T) {
	weights := []float32{1, 2, 3}
	m, err := resolveMeasure("wdtw", config.ComputeConfig{}, weights)
	if err != nil {
		t.Fatalf("resolveMeasure: %v", err)
	}
	w := m.(measure.WDTW)
	if len(w.Weights) != 3 || w.Weights[1] != 2 {
		t.Errorf("WDTW.Weights = %v, want %v", w.Weights, weights)
	}
}

func TestPrintComputeResult_TextAndJSON(t *testing.T) {
	if err := printComputeResult("text", "dtw", 1.5); err != nil {
		t.Errorf("printComputeResult(text) error = %v", err)
	}
	if err := printComputeResult("json", "dtw", 1.5); err != nil {
		t.Errorf("printComputeResult(json) error = %v", err)
	}
}
