package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bitbucket.org/dtolpin/gpcmp/kernel"
)

func TestDefaultBuild(t *testing.T) {
	ks, err := DefaultConfig().Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(ks) != 4 {
		t.Fatalf("got %d kernels, want 4", len(ks))
	}
	for i, want := range []string{
		"gaussian(l=0.1,v=1)",
		"rbf(l=1,v=1)",
		"rq(l=0.1,v=1,a=1)",
		"expsine(l=1,v=1,p=0.2)",
	} {
		if got := ks[i].String(); got != want {
			t.Errorf("%d: got %q, want %q", i, got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gpcmp.yaml")
	err := os.WriteFile(path, []byte(`
noise: 0.001
kernels:
  - type: rational_quadratic
    length_scale: 0.5
    variance: 2
    alpha: 3
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Noise != 0.001 {
		t.Errorf("noise: got %v", cfg.Noise)
	}
	if cfg.TestFraction != 0.2 {
		t.Errorf("test fraction should keep its default, got %v", cfg.TestFraction)
	}
	if len(cfg.Kernels) != 1 || cfg.Kernels[0].Alpha != 3 {
		t.Errorf("kernels: got %+v", cfg.Kernels)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: expected an error")
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := (KernelConfig{Type: "matern"}).Build(); err == nil {
		t.Error("unknown type: expected an error")
	}
	_, err := (KernelConfig{Type: ExpSineSquared, LengthScale: 1, Variance: 1}).Build()
	if !errors.Is(err, kernel.ErrDomain) {
		t.Errorf("missing period: got %v, want ErrDomain", err)
	}
	cfg := DefaultConfig()
	cfg.Kernels = nil
	if _, err := cfg.Build(); err == nil {
		t.Error("no kernels: expected an error")
	}
	if err := Parse([]byte("noise: [1"), cfg); err == nil {
		t.Error("bad yaml: expected an error")
	}
}
