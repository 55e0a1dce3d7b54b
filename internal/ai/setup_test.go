package ai_test

import (
	"testing"

	"github.com/pdf2quiz/backend/internal/ai"
)

func TestNewDefaultChain_Order(t *testing.T) {
	chain, closeFn := ai.NewDefaultChain(ai.ChainConfig{KimiAPIKey: "k"}, nil)
	defer closeFn()

	want := []string{"gemini/gemini-2.5-flash", "gemini/gemini-2.0-flash", "kimi/moonshot-v1-8k", "local/qwen3-8b"}
	got := chain.Providers()
	if len(got) != len(want) {
		t.Fatalf("expected %d providers, got %d", len(want), len(got))
	}
	for i, p := range got {
		if p.Name() != want[i] {
			t.Errorf("provider %d: expected %q, got %q", i, want[i], p.Name())
		}
	}

	if got[0].Available() || !got[2].Available() || got[3].Available() {
		t.Error("expected only the keyed Kimi provider to be available")
	}
}
