package configs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
	gormLogger "gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "3000" {
		t.Errorf("port = %q, want 3000", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout != 5*time.Second {
		t.Errorf("request timeout = %v", cfg.Server.RequestTimeout)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Database.SlowThreshold != 200*time.Millisecond {
		t.Errorf("slow threshold = %v", cfg.Database.SlowThreshold)
	}
	if Conf != cfg {
		t.Error("Load should publish the config in Conf")
	}
}

func TestLoadEnvAliases(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/x.db")
	t.Setenv("DB_SEED", "true")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8081" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.SQLitePath != "/tmp/x.db" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if !cfg.Seed.Enabled {
		t.Error("seed should be enabled")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		" INFO": zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestParseGormLevel(t *testing.T) {
	if ParseGormLevel("silent") != gormLogger.Silent {
		t.Error("silent")
	}
	if ParseGormLevel("") != gormLogger.Warn {
		t.Error("default should be warn")
	}
}

func TestNewLoggerWithoutSinks(t *testing.T) {
	log, atom, err := NewLogger(LoggingConfig{Level: "warn"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if log == nil {
		t.Fatal("nil logger")
	}
	if atom.Level() != zapcore.WarnLevel {
		t.Errorf("level = %v", atom.Level())
	}
}

func TestErrorFileTakesSevereLevels(t *testing.T) {
	for _, l := range []zapcore.Level{zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel} {
		if !fileAccepts(zapcore.ErrorLevel, l) {
			t.Errorf("error file should accept %v", l)
		}
		if fileAccepts(zapcore.WarnLevel, l) {
			t.Errorf("warn file should not accept %v", l)
		}
	}
	if fileAccepts(zapcore.ErrorLevel, zapcore.WarnLevel) {
		t.Error("error file should not accept warn")
	}

	dir := t.TempDir()
	log, _, err := NewLogger(LoggingConfig{Level: "info", Directory: dir})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.DPanic("should land in the error file")
	_ = log.Sync()

	files, _ := filepath.Glob(filepath.Join(dir, "*-error.log"))
	if len(files) != 1 {
		t.Fatalf("error log files = %v", files)
	}
	body, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "should land in the error file") {
		t.Fatalf("error log = %q", body)
	}
}
