// Package source reads geographic coordinates from CSV files.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"coordinate-converter/internal/models"
)

// Selection restricts which CSV columns are read, either by header name or
// by zero-based position. At most one of the two may be set; when both are
// empty every column is read. The selected columns must include "latitude"
// and "longitude" headers.
type Selection struct {
	Names   []string
	Indexes []int
}

// ParseColumnNames parses a comma-separated column-name spec, e.g.
// "latitude,longitude,distance_km".
func ParseColumnNames(spec string) ([]string, error) {
	var names []string
	for _, part := range strings.Split(spec, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			return nil, fmt.Errorf("source: empty column name in spec %q", spec)
		}
		names = append(names, name)
	}
	return names, nil
}

// ParseColumnIndexes parses a comma-separated column-index spec, e.g. "1,3".
func ParseColumnIndexes(spec string) ([]int, error) {
	var indexes []int
	for _, part := range strings.Split(spec, ",") {
		index, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("source: invalid column index %q in spec %q", part, spec)
		}
		if index < 0 {
			return nil, fmt.Errorf("source: negative column index %d in spec %q", index, spec)
		}
		indexes = append(indexes, index)
	}
	return indexes, nil
}

// ReadCoordinates reads coordinate records from the CSV file at path. The
// file must have a header row; the selected columns must include latitude
// and longitude, while distance_km and bearing_degrees are optional.
func ReadCoordinates(path string, selection Selection) ([]models.CoordinateRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: failed to open file: %w", err)
	}
	defer file.Close()

	return readCoordinates(file, selection)
}

func readCoordinates(r io.Reader, selection Selection) ([]models.CoordinateRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("source: failed to read header: %w", err)
	}

	columns, err := resolveColumns(header, selection)
	if err != nil {
		return nil, err
	}

	var records []models.CoordinateRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("source: failed to read record: %w", err)
		}

		record, err := parseRecord(row, columns)
		if err != nil {
			return nil, fmt.Errorf("source: line %d: %w", line, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// columnLayout holds the resolved positions of the recognized columns.
// Optional columns are -1 when absent from the selection.
type columnLayout struct {
	latitude       int
	longitude      int
	distanceKM     int
	bearingDegrees int
}

func resolveColumns(header []string, selection Selection) (columnLayout, error) {
	layout := columnLayout{latitude: -1, longitude: -1, distanceKM: -1, bearingDegrees: -1}

	positions := make([]int, 0, len(header))
	switch {
	case len(selection.Names) > 0 && len(selection.Indexes) > 0:
		return layout, fmt.Errorf("source: column names and indexes are mutually exclusive")
	case len(selection.Names) > 0:
		for _, name := range selection.Names {
			pos := -1
			for i, h := range header {
				if strings.TrimSpace(h) == name {
					pos = i
					break
				}
			}
			if pos < 0 {
				return layout, fmt.Errorf("source: column %q not found in header", name)
			}
			positions = append(positions, pos)
		}
	case len(selection.Indexes) > 0:
		for _, index := range selection.Indexes {
			if index >= len(header) {
				return layout, fmt.Errorf("source: column index %d out of range, header has %d columns", index, len(header))
			}
			positions = append(positions, index)
		}
	default:
		for i := range header {
			positions = append(positions, i)
		}
	}

	for _, pos := range positions {
		switch strings.TrimSpace(header[pos]) {
		case "latitude":
			layout.latitude = pos
		case "longitude":
			layout.longitude = pos
		case "distance_km":
			layout.distanceKM = pos
		case "bearing_degrees":
			layout.bearingDegrees = pos
		}
	}

	if layout.latitude < 0 || layout.longitude < 0 {
		return layout, fmt.Errorf("source: selected columns must include latitude and longitude")
	}

	return layout, nil
}

func parseRecord(row []string, columns columnLayout) (models.CoordinateRecord, error) {
	var record models.CoordinateRecord

	if columns.latitude >= len(row) || columns.longitude >= len(row) {
		return record, fmt.Errorf("invalid record length: %d", len(row))
	}

	latitude, err := strconv.ParseFloat(strings.TrimSpace(row[columns.latitude]), 64)
	if err != nil {
		return record, fmt.Errorf("invalid latitude: %q", row[columns.latitude])
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(row[columns.longitude]), 64)
	if err != nil {
		return record, fmt.Errorf("invalid longitude: %q", row[columns.longitude])
	}

	record.Latitude = latitude
	record.Longitude = longitude

	if columns.distanceKM >= 0 && columns.distanceKM < len(row) {
		if value := strings.TrimSpace(row[columns.distanceKM]); value != "" {
			distance, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return record, fmt.Errorf("invalid distance_km: %q", value)
			}
			record.DistanceKM = &distance
		}
	}
	if columns.bearingDegrees >= 0 && columns.bearingDegrees < len(row) {
		if value := strings.TrimSpace(row[columns.bearingDegrees]); value != "" {
			bearing, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return record, fmt.Errorf("invalid bearing_degrees: %q", value)
			}
			record.BearingDegrees = &bearing
		}
	}

	return record, nil
}
