package config

import (
	"testing"

	"storefront-assistant-be/pkg/dialogue/handoff"
	"storefront-assistant-be/pkg/dialogue/quality"
)

func TestLoadDialogueDefaults(t *testing.T) {
	cfg := Load()

	if got, want := cfg.Dialogue.RiskWeights, handoff.DefaultRiskWeights(); got != want {
		t.Errorf("RiskWeights = %+v, want %+v", got, want)
	}
	if got, want := cfg.Dialogue.QualityDeltas, quality.DefaultDeltas(); got != want {
		t.Errorf("QualityDeltas = %+v, want %+v", got, want)
	}
	if cfg.Dialogue.LowConfidenceScore != 0.45 {
		t.Errorf("LowConfidenceScore = %v, want 0.45", cfg.Dialogue.LowConfidenceScore)
	}
	if cfg.Dialogue.PageThreshold != 0.45 {
		t.Errorf("PageThreshold = %v, want 0.45", cfg.Dialogue.PageThreshold)
	}
}

func TestLoadDialogueOverrides(t *testing.T) {
	t.Setenv("HANDOFF_WEIGHT_NEGATIVE_SENTIMENT", "5")
	t.Setenv("QUALITY_DELTA_PURCHASE_INTENT", "30")
	t.Setenv("QUALITY_DELTA_ABANDONED", "-25")
	t.Setenv("RETRIEVAL_LOW_CONFIDENCE_SCORE", "0.55")

	cfg := Load()

	if cfg.Dialogue.RiskWeights.NegativeSentiment != 5 {
		t.Errorf("NegativeSentiment weight = %d, want 5", cfg.Dialogue.RiskWeights.NegativeSentiment)
	}
	if cfg.Dialogue.QualityDeltas.PurchaseIntent != 30 {
		t.Errorf("PurchaseIntent delta = %d, want 30", cfg.Dialogue.QualityDeltas.PurchaseIntent)
	}
	if cfg.Dialogue.QualityDeltas.Abandoned != -25 {
		t.Errorf("Abandoned delta = %d, want -25", cfg.Dialogue.QualityDeltas.Abandoned)
	}
	if cfg.Dialogue.LowConfidenceScore != 0.55 {
		t.Errorf("LowConfidenceScore = %v, want 0.55", cfg.Dialogue.LowConfidenceScore)
	}

	// Untouched knobs keep the calibrated defaults.
	defaults := handoff.DefaultRiskWeights()
	if cfg.Dialogue.RiskWeights.LowConfidence != defaults.LowConfidence {
		t.Errorf("LowConfidence weight = %d, want default %d", cfg.Dialogue.RiskWeights.LowConfidence, defaults.LowConfidence)
	}
	if cfg.Dialogue.QualityDeltas.Satisfaction != quality.DefaultDeltas().Satisfaction {
		t.Errorf("Satisfaction delta = %d, want default", cfg.Dialogue.QualityDeltas.Satisfaction)
	}
}

func TestLoadDialogueIgnoresMalformedOverride(t *testing.T) {
	t.Setenv("HANDOFF_WEIGHT_UNCERTAIN_RESPONSE", "not-a-number")

	cfg := Load()

	if got, want := cfg.Dialogue.RiskWeights.UncertainResponse, handoff.DefaultRiskWeights().UncertainResponse; got != want {
		t.Errorf("UncertainResponse weight = %d, want default %d", got, want)
	}
}
