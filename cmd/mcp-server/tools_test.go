package main

import (
	"reflect"
	"testing"
)

func TestValidateDateRange(t *testing.T) {
	if err := validateDateRange("2024-06-01", "2024-08-31"); err != nil {
		t.Errorf("valid range: %v", err)
	}
	if err := validateDateRange("2024-08-31", "2024-06-01"); err == nil {
		t.Error("expected error for inverted range")
	}
	if err := validateDateRange("2024-06-01", "2024-06-01"); err == nil {
		t.Error("expected error for zero-length range")
	}
	if err := validateDateRange("June 2024", "2024-08-31"); err == nil {
		t.Error("expected error for unparseable start")
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" B8, B4 ,B3 ")
	want := []string{"B8", "B4", "B3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitCSV: got %v, want %v", got, want)
	}
	if got := splitCSV(""); len(got) != 0 {
		t.Errorf("empty input: got %v", got)
	}
}

func TestVisDefaultsFor(t *testing.T) {
	v := visDefaultsFor("COPERNICUS/S2_SR_HARMONIZED")
	if !reflect.DeepEqual(v.Bands, []string{"B4", "B3", "B2"}) {
		t.Errorf("S2 bands: got %v", v.Bands)
	}
	fallback := visDefaultsFor("SOME/UNKNOWN/DATASET")
	if fallback.Bands != nil || fallback.Max != 3000 {
		t.Errorf("fallback: got %+v", fallback)
	}
}

func TestExportDescriptionPattern(t *testing.T) {
	valid := []string{"ndvi_kenya_2024", "Export-01", "a"}
	for _, v := range valid {
		if !descriptionPattern.MatchString(v) {
			t.Errorf("%q should be valid", v)
		}
	}
	invalid := []string{"", "has space", "semi;colon", "path/slash"}
	for _, v := range invalid {
		if descriptionPattern.MatchString(v) {
			t.Errorf("%q should be rejected", v)
		}
	}
}

func TestCacheKey(t *testing.T) {
	if got := cacheKey("  Paris,   France "); got != "paris, france" {
		t.Errorf("cacheKey: got %q", got)
	}
	if cacheKey("Tokyo") != cacheKey("tokyo") {
		t.Error("cache key must be case-insensitive")
	}
}
