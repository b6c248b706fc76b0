package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// MultiOutput 把若干共享同一特征帧的 Ridge 组合为多目标回归器。
// 一次 Predict 返回与 TargetNames 对齐的预测切片，供 Fallback 引擎整批消费。
type MultiOutput struct {
	ModelName   string   `json:"name"`
	TargetNames []string `json:"targets"`
	Models      []*Ridge `json:"models"`
}

// NewMultiOutput 创建空的多目标回归器。
func NewMultiOutput(name string) *MultiOutput {
	return &MultiOutput{ModelName: name}
}

func (m *MultiOutput) Name() string      { return m.ModelName }
func (m *MultiOutput) Targets() []string { return m.TargetNames }

// Fit 对每个目标各拟合一个 Ridge；任一目标失败整体失败（不留半成品）。
func (m *MultiOutput) Fit(x [][]float64, targets map[string][]float64, order []string, lambda float64) error {
	models := make([]*Ridge, 0, len(order))
	for _, target := range order {
		y, ok := targets[target]
		if !ok {
			return fmt.Errorf("multioutput %s: missing target column %s", m.ModelName, target)
		}
		r := NewRidge(target, lambda)
		if err := r.Fit(x, y); err != nil {
			return err
		}
		models = append(models, r)
	}
	m.TargetNames = append([]string(nil), order...)
	m.Models = models
	return nil
}

// Predict 返回与 Targets() 对齐的预测值切片。
func (m *MultiOutput) Predict(row []float64) ([]float64, error) {
	if len(m.Models) == 0 {
		return nil, fmt.Errorf("multioutput %s: not fitted", m.ModelName)
	}
	out := make([]float64, len(m.Models))
	for i, sub := range m.Models {
		v, err := sub.Predict(row)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func LoadMultiOutput(path string) (*MultiOutput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m MultiOutput
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if len(m.Models) != len(m.TargetNames) {
		return nil, fmt.Errorf("multioutput %s: %d models for %d targets", m.ModelName, len(m.Models), len(m.TargetNames))
	}
	return &m, nil
}

func (m *MultiOutput) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
