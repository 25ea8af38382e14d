// SPDX-License-Identifier: BSD-3-Clause

package bmc

import (
	"encoding/json"
	"fmt"
)

// sensorJSON is the per-sensor snapshot shape.
type sensorJSON struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Value       float64 `json:"value"`
	Status      string  `json:"status"`
	MinValid    float64 `json:"min_valid"`
	MaxWarning  float64 `json:"max_warning"`
	MaxCritical float64 `json:"max_critical"`
	LastUpdated int64   `json:"last_updated"`
}

type pidJSON struct {
	Kp        float64 `json:"kp"`
	Ki        float64 `json:"ki"`
	Kd        float64 `json:"kd"`
	Setpoint  float64 `json:"setpoint"`
	Output    float64 `json:"output"`
	Integral  float64 `json:"integral"`
	PrevError float64 `json:"prev_error"`
}

type thermalJSON struct {
	FanDutyPercent float64 `json:"fan_duty_percent"`
	PID            pidJSON `json:"pid"`
}

type imageJSON struct {
	Name         string `json:"name"`
	ExpectedHash string `json:"expected_hash"`
	ActualHash   string `json:"actual_hash"`
	Verified     bool   `json:"verified"`
	Passed       bool   `json:"passed"`
}

type secureBootJSON struct {
	OverallPassed bool        `json:"overall_passed"`
	Images        []imageJSON `json:"images"`
}

type snapshotJSON struct {
	Sensors    []sensorJSON   `json:"sensors"`
	Thermal    thermalJSON    `json:"thermal"`
	SecureBoot secureBootJSON `json:"secure_boot"`
}

// EncodeSnapshot copies the full state document under the lock, then
// marshals the copy to pretty-printed JSON after releasing it. The caller performs the actual file
// write (temp + rename) outside the lock so disk latency never blocks
// IPMI handlers.
func (s *State) EncodeSnapshot() ([]byte, error) {
	s.mu.Lock()

	doc := snapshotJSON{
		Sensors: make([]sensorJSON, len(s.Sensors)),
		Thermal: thermalJSON{
			FanDutyPercent: s.FanDutyPercent,
		},
		SecureBoot: secureBootJSON{
			OverallPassed: s.SecureBootPassed,
		},
	}

	for i, r := range s.Sensors {
		doc.Sensors[i] = sensorJSON{
			Name:        r.Name,
			Type:        r.Type.String(),
			Value:       r.Value,
			Status:      r.Status.String(),
			MinValid:    r.MinValid,
			MaxWarning:  r.MaxWarning,
			MaxCritical: r.MaxCritical,
			LastUpdated: r.LastUpdated.Unix(),
		}
	}

	if s.PID != nil {
		doc.Thermal.PID = pidJSON{
			Kp:        s.PID.Kp,
			Ki:        s.PID.Ki,
			Kd:        s.PID.Kd,
			Setpoint:  s.PID.Setpoint,
			Output:    s.PID.Output,
			Integral:  s.PID.Integral,
			PrevError: s.PID.PrevError,
		}
	}

	if s.SecureBoot != nil {
		doc.SecureBoot.Images = make([]imageJSON, len(s.SecureBoot.Images))
		for i, img := range s.SecureBoot.Images {
			doc.SecureBoot.Images[i] = imageJSON{
				Name:         img.Name,
				ExpectedHash: img.ExpectedHash,
				ActualHash:   img.ActualHash,
				Verified:     img.Verified,
				Passed:       img.Passed,
			}
		}
	}

	s.mu.Unlock()

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotEncode, err)
	}
	return append(b, '\n'), nil
}

// EncodeSEL copies the SEL document under the lock and marshals it after
// releasing the lock.
func (s *State) EncodeSEL() ([]byte, error) {
	s.mu.Lock()
	doc := s.SEL.Document()
	s.mu.Unlock()

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSELEncode, err)
	}
	return append(b, '\n'), nil
}
