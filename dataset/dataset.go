package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Frame 是从 CSV 加载的原始训练数据表。
// 加载时丢弃含空单元格的行（训练数据不做插值，残缺行直接剔除）。
type Frame struct {
	Header []string
	Rows   []map[string]string
}

// Load 从 CSV 文件加载训练数据。首行必须是表头。
func Load(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset: %s has no data rows", path)
	}

	header := records[0]
	frame := &Frame{Header: header}
	for _, rec := range records[1:] {
		if len(rec) != len(header) {
			continue
		}
		row := make(map[string]string, len(header))
		complete := true
		for i, col := range header {
			v := strings.TrimSpace(rec[i])
			if v == "" {
				complete = false
				break
			}
			row[col] = v
		}
		if complete {
			frame.Rows = append(frame.Rows, row)
		}
	}
	if len(frame.Rows) == 0 {
		return nil, fmt.Errorf("dataset: %s has no complete rows", path)
	}
	return frame, nil
}

// Len 返回有效行数。
func (f *Frame) Len() int { return len(f.Rows) }

// HasColumn 判断表头是否包含某列。
func (f *Frame) HasColumn(name string) bool {
	for _, h := range f.Header {
		if h == name {
			return true
		}
	}
	return false
}

// Floats 把某列按数值解析；任一行解析失败则报错。
func (f *Frame) Floats(name string) ([]float64, error) {
	if !f.HasColumn(name) {
		return nil, fmt.Errorf("dataset: missing column %s", name)
	}
	out := make([]float64, len(f.Rows))
	for i, row := range f.Rows {
		v, err := strconv.ParseFloat(row[name], 64)
		if err != nil {
			return nil, fmt.Errorf("dataset: column %s row %d: %w", name, i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Strings 返回某列的原始字符串值。
func (f *Frame) Strings(name string) []string {
	out := make([]string, len(f.Rows))
	for i, row := range f.Rows {
		out[i] = row[name]
	}
	return out
}
