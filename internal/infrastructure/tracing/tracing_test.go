package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutribase/backend/config"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.TracingConfig
		wantErr   bool
		wantSpans bool
	}{
		{name: "stdout exports sampled spans", cfg: config.TracingConfig{Enabled: true, Exporter: "stdout", SampleRatio: 1}, wantSpans: true},
		{name: "zero ratio samples nothing", cfg: config.TracingConfig{Enabled: true, Exporter: "stdout", SampleRatio: 0}},
		{name: "unknown exporter", cfg: config.TracingConfig{Enabled: true, Exporter: "zipkin", SampleRatio: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			provider, err := NewProvider(tt.cfg, "nutribase-test", "0.0.1", &out)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, provider)
				return
			}
			require.NoError(t, err)

			_, span := provider.Tracer("test").Start(context.Background(), "nutrition.serving")
			span.End()
			require.NoError(t, provider.Shutdown(context.Background()))

			if tt.wantSpans {
				assert.Contains(t, out.String(), "nutrition.serving")
				assert.Contains(t, out.String(), "nutribase-test")
			} else {
				assert.Empty(t, out.String())
			}
		})
	}
}
