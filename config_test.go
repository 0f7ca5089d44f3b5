package giac

import "testing"

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := ConfigFromEnv()
		if err != nil {
			t.Fatalf("ConfigFromEnv failed: %v", err)
		}
		if cfg.LibraryPath != "" || cfg.DisableNative {
			t.Errorf("defaults = %+v; want zero value", cfg)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("GIAC_LIBRARY_PATH", "/opt/giac/libgiac_c.so")
		t.Setenv("GIAC_DISABLE_NATIVE", "true")

		cfg, err := ConfigFromEnv()
		if err != nil {
			t.Fatalf("ConfigFromEnv failed: %v", err)
		}
		if cfg.LibraryPath != "/opt/giac/libgiac_c.so" {
			t.Errorf("LibraryPath = %q", cfg.LibraryPath)
		}
		if !cfg.DisableNative {
			t.Error("DisableNative = false; want true")
		}
	})
}
