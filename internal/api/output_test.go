package api

import (
	"strings"
	"testing"
)

func TestOutputTo(t *testing.T) {
	data := map[string]any{"title": "1984", "pages": 328}

	t.Run("yaml", func(t *testing.T) {
		var sb strings.Builder
		if err := OutputTo(&sb, OutputFormatYAML, data); err != nil {
			t.Fatalf("OutputTo: %v", err)
		}
		if !strings.Contains(sb.String(), "title: \"1984\"") && !strings.Contains(sb.String(), "title: 1984") {
			t.Errorf("yaml output: %q", sb.String())
		}
	})

	t.Run("json", func(t *testing.T) {
		var sb strings.Builder
		if err := OutputTo(&sb, OutputFormatJSON, data); err != nil {
			t.Fatalf("OutputTo: %v", err)
		}
		if !strings.Contains(sb.String(), `"pages": 328`) {
			t.Errorf("json output: %q", sb.String())
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		var sb strings.Builder
		if err := OutputTo(&sb, OutputFormat("xml"), data); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestSetOutputFormat(t *testing.T) {
	t.Cleanup(func() { SetOutputFormat("yaml") })

	SetOutputFormat("json")
	if globalOutputFormat != OutputFormatJSON {
		t.Errorf("got %q, want json", globalOutputFormat)
	}
	SetOutputFormat("nonsense")
	if globalOutputFormat != OutputFormatYAML {
		t.Errorf("got %q, want yaml fallback", globalOutputFormat)
	}
}
