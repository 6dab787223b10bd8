// Package holidays reads holiday list files that extend the built-in
// holiday table. Both YAML and JSON are accepted, either as a bare list
// of days or wrapped in a document with a year:
//
//	year: 2027
//	days:
//	  - date: "2027-01-01"
//	    name: 元旦
//	    type: holiday
//
// Instead of type a day may carry isOffDay, as published by the
// chinese-holiday-cn data sets.
package holidays

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"leavely/internal/calendar"
)

// File is the wrapped document form.
type File struct {
	Year int     `json:"year" yaml:"year"`
	Days []Entry `json:"days" yaml:"days"`
}

// Entry is one day of a holiday file.
type Entry struct {
	Date     string `json:"date" yaml:"date"`
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	IsOffDay *bool  `json:"isOffDay,omitempty" yaml:"isOffDay,omitempty"`
}

// Kind classifies the entry with calendar.ParseKind. An entry without a
// type falls back to isOffDay.
func (e Entry) Kind() (calendar.Kind, error) {
	if strings.TrimSpace(e.Type) == "" {
		if e.IsOffDay == nil {
			return "", fmt.Errorf("day %s has neither type nor isOffDay", e.Date)
		}
		if *e.IsOffDay {
			return calendar.KindHoliday, nil
		}
		return calendar.KindMakeupWorkday, nil
	}
	kind, err := calendar.ParseKind(e.Type)
	if err != nil {
		return "", fmt.Errorf("day %s: %w", e.Date, err)
	}
	return kind, nil
}

// ParseFile reads path, choosing the decoder by extension
// (.yaml/.yml, anything else is JSON).
func ParseFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holiday file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseYAML decodes a YAML holiday document.
func ParseYAML(data []byte) ([]Entry, error) {
	var list []Entry
	if err := yaml.Unmarshal(data, &list); err == nil {
		return validate(File{Days: list})
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	return validate(file)
}

// ParseJSON decodes a JSON holiday document.
func ParseJSON(data []byte) ([]Entry, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []Entry
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
		}
		return validate(File{Days: list})
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return validate(file)
}

func validate(file File) ([]Entry, error) {
	out := make([]Entry, 0, len(file.Days))
	for _, e := range file.Days {
		e.Date = strings.TrimSpace(e.Date)
		day, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse day '%s': %w", e.Date, err)
		}
		if file.Year != 0 && day.Year() != file.Year {
			return nil, fmt.Errorf("day %s is outside year %d", e.Date, file.Year)
		}
		kind, err := e.Kind()
		if err != nil {
			return nil, err
		}
		e.Type = string(kind)
		out = append(out, e)
	}
	return out, nil
}
