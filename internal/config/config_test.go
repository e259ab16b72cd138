package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "trix-league-api" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTPAddr)
	}
	if cfg.DBURL != "" {
		t.Fatalf("expected empty DB_URL by default, got %q", cfg.DBURL)
	}
	if cfg.ReadTimeout != 10*time.Second || cfg.WriteTimeout != 15*time.Second {
		t.Fatalf("unexpected timeouts: read=%s write=%s", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if cfg.StatsWorkerCount != 8 {
		t.Fatalf("unexpected stats worker count: %d", cfg.StatsWorkerCount)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "trix-league-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "trix-league-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}

func TestLoad_StatsWorkerCountValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("custom value", func(t *testing.T) {
		t.Setenv("STATS_WORKER_COUNT", "16")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StatsWorkerCount != 16 {
			t.Fatalf("unexpected stats worker count: %d", cfg.StatsWorkerCount)
		}
	})

	t.Run("zero rejected", func(t *testing.T) {
		t.Setenv("STATS_WORKER_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for STATS_WORKER_COUNT=0")
		}
	})

	t.Run("not a number", func(t *testing.T) {
		t.Setenv("STATS_WORKER_COUNT", "many")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for non-numeric STATS_WORKER_COUNT")
		}
	})
}
