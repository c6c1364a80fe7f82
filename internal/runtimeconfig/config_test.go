package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/itkodovaya/site-builder/internal/runtimeconfig"
)

func validConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Commit.InternalToken = "super-secret"
	return cfg
}

func TestConfigValidate_AcceptsDefaultsPlusToken(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresDraftStoreAddress(t *testing.T) {
	cfg := validConfig()
	cfg.DraftStore.Address = " "

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrDraftStoreAddressRequired) {
		t.Fatalf("expected ErrDraftStoreAddressRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresPositiveTTL(t *testing.T) {
	cfg := validConfig()
	cfg.DraftStore.DraftTTLSecond = 0

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrDraftTTLInvalid) {
		t.Fatalf("expected ErrDraftTTLInvalid, got %v", err)
	}
}

func TestConfigValidate_RequiresRelationalDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Relational.DSN = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrRelationalDSNRequired) {
		t.Fatalf("expected ErrRelationalDSNRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownRelationalDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Relational.Driver = "oracle"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrRelationalDriverUnknown) {
		t.Fatalf("expected ErrRelationalDriverUnknown, got %v", err)
	}
}

func TestConfigValidate_RequiresAssetBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Assets.BaseURL = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrAssetBaseURLRequired) {
		t.Fatalf("expected ErrAssetBaseURLRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresBindHost(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Host = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrBindHostRequired) {
		t.Fatalf("expected ErrBindHostRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsOutOfRangePort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 70000

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrBindPortInvalid) {
		t.Fatalf("expected ErrBindPortInvalid, got %v", err)
	}
}

func TestConfigValidate_RequiresCommitToken(t *testing.T) {
	cfg := validConfig()
	cfg.Commit.InternalToken = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrCommitTokenRequired) {
		t.Fatalf("expected ErrCommitTokenRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Enabled = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Enabled = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormatForGologger(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Enabled = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestDraftStoreConfig_DraftTTLConvertsSecondsToDuration(t *testing.T) {
	cfg := runtimeconfig.DraftStoreConfig{DraftTTLSecond: 90}
	if got, want := cfg.DraftTTL().Seconds(), 90.0; got != want {
		t.Fatalf("expected %v seconds, got %v", want, got)
	}
}
