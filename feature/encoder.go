package feature

import "sort"

// LabelEncoderSet 是 Fallback 族共享的类别编码器集合。
// 将类别映射为整数（0, 1, 2, ...），训练时 Fit、推理时只 Transform。
// 每个类别列一个映射，按字典序分配编号以保证重训的确定性。
type LabelEncoderSet struct {
	Columns map[string]map[string]int `json:"columns"`
}

func NewLabelEncoderSet() *LabelEncoderSet {
	return &LabelEncoderSet{Columns: make(map[string]map[string]int)}
}

// Fit 在训练时从列值拟合类别编号（去重后字典序）。
func (e *LabelEncoderSet) Fit(column string, values []string) {
	seen := make(map[string]bool, len(values))
	uniq := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			uniq = append(uniq, v)
		}
	}
	sort.Strings(uniq)

	labels := make(map[string]int, len(uniq))
	for i, v := range uniq {
		labels[v] = i
	}
	e.Columns[column] = labels
}

// Transform 编码单个值；未知类别默认为 0。
func (e *LabelEncoderSet) Transform(column, value string) float64 {
	labels, ok := e.Columns[column]
	if !ok {
		return 0
	}
	return float64(labels[value])
}

// Has 判断某列是否已拟合。
func (e *LabelEncoderSet) Has(column string) bool {
	_, ok := e.Columns[column]
	return ok
}
