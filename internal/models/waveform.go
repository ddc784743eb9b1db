package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Waveform is the durable tier of the waveform cache: one row per
// source file, holding the downsampled peak envelope
type Waveform struct {
	gorm.Model
	FileLocation string  `json:"file_location" gorm:"not null;uniqueIndex"`
	PeaksData    []byte  `json:"-" gorm:"type:blob;not null"` // JSON-encoded []float32
	Duration     float64 `json:"duration" gorm:"not null"`    // Duration in seconds
	Resolution   int     `json:"resolution" gorm:"not null"`  // Number of peaks
}

// Peaks returns the decoded peaks data
func (w *Waveform) Peaks() ([]float32, error) {
	var peaks []float32
	if err := json.Unmarshal(w.PeaksData, &peaks); err != nil {
		return nil, err
	}
	return peaks, nil
}

// SetPeaks encodes and sets the peaks data
func (w *Waveform) SetPeaks(peaks []float32) error {
	data, err := json.Marshal(peaks)
	if err != nil {
		return err
	}
	w.PeaksData = data
	w.Resolution = len(peaks)
	return nil
}
