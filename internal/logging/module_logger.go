package logging

import (
	"context"

	"github.com/itkodovaya/site-builder/pkg/interfaces"
)

const (
	rootModule       = "sitebuilder"
	draftStoreModule = "sitebuilder.draftstore"
	generatorModule  = "sitebuilder.generator"
	previewModule    = "sitebuilder.preview"
	commitModule     = "sitebuilder.commit"
	httpModule       = "sitebuilder.http"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// DraftStoreLogger returns the logger namespace reserved for the draft store.
func DraftStoreLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, draftStoreModule)
}

// GeneratorLogger returns the logger namespace reserved for the config generator.
func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

// PreviewLogger returns the logger namespace reserved for the preview renderer.
func PreviewLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, previewModule)
}

// CommitLogger returns the logger namespace reserved for the commit coordinator.
func CommitLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commitModule)
}

// HTTPLogger returns the logger namespace reserved for the HTTP adapter.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
