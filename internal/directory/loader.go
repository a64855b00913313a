// Package directory loads program candidate lists and client profiles
// from local files. The matching core treats the directory as read-only
// input; this package only parses and validates, it never mutates or
// persists anything.
package directory

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"gopkg.in/yaml.v3"

	"github.com/caseharbor/placement-cli/internal/model"
	"github.com/caseharbor/placement-cli/internal/profile"
)

// LoadPrograms reads a program candidate list from a JSON, YAML or XLSX
// file, dispatching on the file extension.
func LoadPrograms(path string) ([]model.Program, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadProgramsJSON(path)
	case ".yaml", ".yml":
		return loadProgramsYAML(path)
	case ".xlsx":
		return loadProgramsXLSX(path)
	default:
		return nil, eris.Errorf("directory: unsupported candidate file %s (want .json, .yaml or .xlsx)", path)
	}
}

// LoadProfile reads a client profile from a JSON or YAML file. The raw
// document goes through the profile builder so missing fields get the
// same defaults as profiles built in process.
func LoadProfile(path string) (*model.ClientProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "directory: read profile %s", path)
	}

	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, eris.Wrapf(err, "directory: parse profile %s", path)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, eris.Wrapf(err, "directory: parse profile %s", path)
		}
	}

	return profile.FromRaw(raw), nil
}

func loadProgramsJSON(path string) ([]model.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "directory: read candidates %s", path)
	}

	var programs []model.Program
	if err := json.Unmarshal(data, &programs); err != nil {
		return nil, eris.Wrapf(err, "directory: parse candidates %s", path)
	}

	return validate(programs)
}

// programDoc mirrors model.Program with yaml tags. Kept local so the
// model package stays serialization-agnostic beyond JSON.
type programDoc struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Insurance   []string `yaml:"insurance"`
	Specialties []string `yaml:"specialties"`
	Features    []string `yaml:"features"`
	Coordinates *struct {
		Lat float64 `yaml:"lat"`
		Lng float64 `yaml:"lng"`
	} `yaml:"coordinates"`
	AgeRange *struct {
		Min int `yaml:"min"`
		Max int `yaml:"max"`
	} `yaml:"age_range"`
	GenderServed string `yaml:"gender_served"`
	Description  string `yaml:"description"`
}

func loadProgramsYAML(path string) ([]model.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "directory: read candidates %s", path)
	}

	var docs []programDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, eris.Wrapf(err, "directory: parse candidates %s", path)
	}

	programs := make([]model.Program, 0, len(docs))
	for _, d := range docs {
		p := model.Program{
			ID:           d.ID,
			Name:         d.Name,
			Insurance:    d.Insurance,
			Specialties:  d.Specialties,
			Features:     d.Features,
			GenderServed: d.GenderServed,
			Description:  d.Description,
		}
		if d.Coordinates != nil {
			p.Coordinates = &model.Coordinates{Lat: d.Coordinates.Lat, Lng: d.Coordinates.Lng}
		}
		if d.AgeRange != nil {
			p.AgeRange = &model.AgeRange{Min: d.AgeRange.Min, Max: d.AgeRange.Max}
		}
		programs = append(programs, p)
	}

	return validate(programs)
}

// xlsxColumns is the expected header layout of a candidate spreadsheet.
// List cells are semicolon-separated.
var xlsxColumns = []string{
	"id", "name", "insurance", "specialties", "features",
	"lat", "lng", "age_min", "age_max", "gender_served", "description",
}

func loadProgramsXLSX(path string) ([]model.Program, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "directory: open candidates %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("directory: %s has no sheets", path)
	}

	var programs []model.Program
	for i, row := range f.Sheets[0].Rows {
		cells := rowToStrings(row, len(xlsxColumns))
		if i == 0 {
			continue // header
		}

		p := model.Program{
			ID:           strings.TrimSpace(cells[0]),
			Name:         strings.TrimSpace(cells[1]),
			Insurance:    splitList(cells[2]),
			Specialties:  splitList(cells[3]),
			Features:     splitList(cells[4]),
			GenderServed: strings.TrimSpace(cells[9]),
			Description:  strings.TrimSpace(cells[10]),
		}

		lat, latErr := parseFloat(cells[5])
		lng, lngErr := parseFloat(cells[6])
		if latErr == nil && lngErr == nil {
			p.Coordinates = &model.Coordinates{Lat: lat, Lng: lng}
		}

		min, minErr := parseInt(cells[7])
		max, maxErr := parseInt(cells[8])
		if minErr == nil && maxErr == nil {
			p.AgeRange = &model.AgeRange{Min: min, Max: max}
		}

		if p.ID == "" && p.Name == "" {
			continue // blank row
		}
		programs = append(programs, p)
	}

	return validate(programs)
}

func validate(programs []model.Program) ([]model.Program, error) {
	for i, p := range programs {
		if p.ID == "" {
			return nil, eris.Errorf("directory: candidate %d is missing an id", i)
		}
	}
	return programs, nil
}

func rowToStrings(row *xlsx.Row, width int) []string {
	cells := make([]string, width)
	for j, cell := range row.Cells {
		if j >= width {
			break
		}
		cells[j] = cell.String()
	}
	return cells
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
