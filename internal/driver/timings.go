package driver

import (
	"encoding/json"
	"fmt"

	"zoia/internal/diag"
	"zoia/internal/observ"
	"zoia/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic кладёт тайминги в bag как info-диагностику с JSON в заметке.
// Лимит bag'а на неё не распространяется.
func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload, file source.FileID) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	span := source.Span{File: file}
	entry := diag.New(diag.SevInfo, diag.ObsTimings, span, msg).WithNote(span, string(data))

	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
