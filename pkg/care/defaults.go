package care

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Defaults maps plant types and watering-needs classes to a watering
// interval in days.
type Defaults struct {
	byType  map[string]int
	byNeeds map[string]int
}

const fallbackInterval = 7

func NewDefaults() *Defaults {
	return &Defaults{
		byType:  map[string]int{},
		byNeeds: map[string]int{"high": 2, "moderate": 7, "low": 14},
	}
}

// LoadDefaults reads the optional CSV and XLSX tables. Rows from the XLSX
// override rows from the CSV. Either path may be empty.
func LoadDefaults(csvPath, xlsxPath string) (*Defaults, error) {
	d := NewDefaults()
	if csvPath != "" {
		if err := d.loadCSV(csvPath); err != nil {
			return d, fmt.Errorf("care defaults csv: %w", err)
		}
	}
	if xlsxPath != "" {
		if err := d.loadXLSX(xlsxPath); err != nil {
			return d, fmt.Errorf("care defaults xlsx: %w", err)
		}
	}
	return d, nil
}

// Interval prefers the plant type, then the needs class, then a weekly default.
func (d *Defaults) Interval(plantType, wateringNeeds string) int {
	if v, ok := d.byType[key(plantType)]; ok {
		return v
	}
	if v, ok := d.byNeeds[key(wateringNeeds)]; ok {
		return v
	}
	return fallbackInterval
}

func (d *Defaults) loadCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return err
	}
	return d.loadRows(rows)
}

func (d *Defaults) loadXLSX(path string) error {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return err
	}
	return d.loadRows(rows)
}

// loadRows takes a header row followed by data rows. Columns: a plant type
// and/or a watering-needs class, plus the interval in days.
func (d *Defaults) loadRows(rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	norm := func(s string) string {
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(s, "\uFEFF") // BOM
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, "-", "")
		s = strings.ReplaceAll(s, "_", "")
		return s
	}
	hmap := map[string]int{}
	for i, h := range rows[0] {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cType := findAny("PlantType", "type", "category")
	cNeeds := findAny("WateringNeeds", "needs", "watering")
	cDays := findAny("IntervalDays", "interval", "watering_frequency", "days")
	if cDays == -1 || (cType == -1 && cNeeds == -1) {
		return fmt.Errorf("missing required columns, found headers: %v", rows[0])
	}

	for _, rec := range rows[1:] {
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return rec[idx]
		}
		days, err := strconv.Atoi(strings.TrimSpace(get(cDays)))
		if err != nil || days <= 0 {
			continue
		}
		if t := key(get(cType)); t != "" {
			d.byType[t] = days
		}
		if n := key(get(cNeeds)); n != "" {
			d.byNeeds[n] = days
		}
	}
	return nil
}

func key(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
