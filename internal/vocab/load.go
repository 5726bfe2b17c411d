package vocab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/xuri/excelize/v2"
)

// MetaSheet is the workbook sheet holding pack-level key/value settings.
const MetaSheet = "_meta"

// workbookColumns are the recognised lesson-sheet headers.
var workbookColumns = []string{
	"source", "target", "pronunciation", "word_type",
	"example_source", "example_target", "audio_url",
}

// LoadPack reads a vocabulary pack from a .json file or an .xlsx workbook,
// fills in missing IDs, and validates it.
func LoadPack(path string) (*Pack, error) {
	var (
		p   *Pack
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		p, err = loadJSON(path)
	case ".xlsx":
		p, err = loadWorkbook(path)
	default:
		return nil, fmt.Errorf("unsupported pack format %q (want .json or .xlsx)", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	trimPack(p)
	p.assignIDs()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func loadJSON(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pack: %w", err)
	}
	return ParseJSON(data)
}

// ParseJSON decodes and schema-checks a JSON pack. IDs are not assigned
// and Validate is not run.
func ParseJSON(data []byte) (*Pack, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse pack: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var p Pack
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode pack: %w", err)
	}
	return &p, nil
}

// loadWorkbook reads an .xlsx pack. The optional _meta sheet holds
// name/version/language_code/language_name/native_name rows; every other
// non-empty sheet is a lesson whose first row names the columns. An optional
// difficulty column sets the lesson difficulty.
func loadWorkbook(path string) (*Pack, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p := &Pack{Name: base, Version: "1.0.0"}

	order := 0
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if sheet == MetaSheet {
			applyMeta(p, rows)
			continue
		}
		if len(rows) < 2 {
			continue
		}

		order++
		lesson, err := parseLessonSheet(sheet, rows)
		if err != nil {
			return nil, err
		}
		lesson.OrderIndex = order
		p.Lessons = append(p.Lessons, lesson)
	}
	return p, nil
}

func applyMeta(p *Pack, rows [][]string) {
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		val := strings.TrimSpace(row[1])
		switch strings.ToLower(strings.TrimSpace(row[0])) {
		case "name":
			p.Name = val
		case "version":
			p.Version = val
		case "language_code":
			p.Language.Code = val
		case "language_name":
			p.Language.Name = val
		case "native_name":
			p.Language.NativeName = val
		}
	}
}

func parseLessonSheet(sheet string, rows [][]string) (Lesson, error) {
	cols := make(map[string]int)
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range workbookColumns[:2] {
		if _, ok := cols[required]; !ok {
			return Lesson{}, fmt.Errorf("sheet %q: missing %q column", sheet, required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	lesson := Lesson{Title: sheet, Difficulty: 1}
	for _, row := range rows[1:] {
		if cell(row, "source") == "" && cell(row, "target") == "" {
			continue
		}
		lesson.Entries = append(lesson.Entries, Entry{
			SourceWord:    cell(row, "source"),
			TargetWord:    cell(row, "target"),
			Pronunciation: cell(row, "pronunciation"),
			WordType:      cell(row, "word_type"),
			ExampleSource: cell(row, "example_source"),
			ExampleTarget: cell(row, "example_target"),
			AudioURL:      cell(row, "audio_url"),
		})
		if d, err := strconv.Atoi(cell(row, "difficulty")); err == nil {
			lesson.Difficulty = d
		}
	}
	return lesson, nil
}

func trimPack(p *Pack) {
	p.Name = strings.TrimSpace(p.Name)
	p.Version = strings.TrimSpace(p.Version)
	p.Language.Code = strings.ToLower(strings.TrimSpace(p.Language.Code))
	for i := range p.Lessons {
		l := &p.Lessons[i]
		l.Title = strings.TrimSpace(l.Title)
		for j := range l.Entries {
			e := &l.Entries[j]
			e.SourceWord = strings.TrimSpace(e.SourceWord)
			e.TargetWord = strings.TrimSpace(e.TargetWord)
			e.ExampleSource = strings.TrimSpace(e.ExampleSource)
			e.ExampleTarget = strings.TrimSpace(e.ExampleTarget)
		}
	}
}
