package epg

import (
	"strconv"
	"strings"
)

// UnknownChannel is the preview service's sentinel for a guide it could
// fetch but whose channel name it could not resolve.
const UnknownChannel = "Desconhecido"

// Programme is one entry of the preview service's schedule listing.
type Programme struct {
	Time       string `json:"hora"`
	Title      string `json:"titulo"`
	Category   string `json:"categoria"`
	DateHeader string `json:"data_cabecalho"`
	Live       Flag   `json:"ao_vivo"`
}

// Preview is the best-effort response of the external guide service. None
// of these fields is contractually guaranteed; absent ones decode to zero
// values.
type Preview struct {
	Error      string      `json:"erro,omitempty"`
	Channel    string      `json:"canal,omitempty"`
	Total      int         `json:"total_programas"`
	Programmes []Programme `json:"programacao,omitempty"`
}

// Flag decodes the service's boolean-ish live marker, which shows up as a
// bool, a number or a string depending on the upstream guide source.
// Decoding never fails: anything unrecognized reads as false.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	switch strings.ToLower(s) {
	case "true", "1", "sim", "yes":
		*f = true
	default:
		if n, err := strconv.ParseFloat(s, 64); err == nil && n != 0 {
			*f = true
		} else {
			*f = false
		}
	}
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatBool(bool(f))), nil
}
