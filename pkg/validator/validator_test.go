package validator

import "testing"

type stagePayload struct {
	Stage string `validate:"quadstage"`
}

func TestQuadStageRule(t *testing.T) {
	v := New()

	for _, stage := range []string{"Q", "U", "A", "D"} {
		if err := v.Validate(stagePayload{Stage: stage}); err != nil {
			t.Fatalf("stage %q should validate: %v", stage, err)
		}
	}

	for _, stage := range []string{"", "X", "q", "QU"} {
		if err := v.Validate(stagePayload{Stage: stage}); err == nil {
			t.Fatalf("stage %q should be rejected", stage)
		}
	}
}
