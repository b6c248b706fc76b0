package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gridmind/gridkit/pkg/conv"
)

// Pipeline 是离线训练导出的生产级预测管线（Production Pipeline）。
//
// 设计原则：
//   - 自包含：类别词表、标准化参数、线性权重全部随制品落盘，推理端零拟合
//   - Features 是训练时的列序，推理必须按同一顺序取值
//   - 未知类别直接报错而不是猜一个编码：上游据此把单目标隔离为 0 值
type Pipeline struct {
	Target     string                    `json:"target"`
	Features   []string                  `json:"features"`
	Categories map[string]map[string]int `json:"categories"`
	Mean       map[string]float64        `json:"mean"`
	Std        map[string]float64        `json:"std"`
	Weights    map[string]float64        `json:"weights"`
	Intercept  float64                   `json:"intercept"`
}

func (p *Pipeline) Name() string { return p.Target }

// Predict 从命名特征帧取值、编码、标准化并求线性预测。
// frame 中缺失的列按 0 处理（帧构建方负责补默认值）。
func (p *Pipeline) Predict(frame map[string]any) (float64, error) {
	score := p.Intercept
	for _, col := range p.Features {
		raw, ok := frame[col]
		var v float64
		switch {
		case !ok:
			v = 0
		case p.isCategorical(col):
			label, valid := conv.ToString(raw)
			if !valid {
				return 0, fmt.Errorf("pipeline %s: non-string value %v for column %s", p.Target, raw, col)
			}
			code, found := p.Categories[col][label]
			if !found {
				return 0, fmt.Errorf("pipeline %s: unknown category %q for column %s", p.Target, label, col)
			}
			v = float64(code)
		default:
			// 不可解析的数值按缺列对待，落 0。
			v, _ = conv.ToFloat64(raw)
		}
		if std, ok := p.Std[col]; ok && std > 0 {
			v = (v - p.Mean[col]) / std
		}
		score += p.Weights[col] * v
	}
	return score, nil
}

// PredictRow 按 Features 列序消费已编码的数值行（Regressor 接口）。
func (p *Pipeline) PredictRow(row []float64) (float64, error) {
	if len(row) != len(p.Features) {
		return 0, fmt.Errorf("pipeline %s: row width %d, expects %d", p.Target, len(row), len(p.Features))
	}
	score := p.Intercept
	for i, col := range p.Features {
		v := row[i]
		if std, ok := p.Std[col]; ok && std > 0 {
			v = (v - p.Mean[col]) / std
		}
		score += p.Weights[col] * v
	}
	return score, nil
}

func (p *Pipeline) isCategorical(col string) bool {
	_, ok := p.Categories[col]
	return ok
}

// Validate 检查制品内部一致性（权重覆盖所有特征列）。
func (p *Pipeline) Validate() error {
	if p.Target == "" {
		return fmt.Errorf("pipeline: empty target")
	}
	if len(p.Features) == 0 {
		return fmt.Errorf("pipeline %s: no feature columns", p.Target)
	}
	for _, col := range p.Features {
		if _, ok := p.Weights[col]; !ok {
			return fmt.Errorf("pipeline %s: missing weight for column %s", p.Target, col)
		}
	}
	return nil
}

// LoadPipeline 从 JSON 制品加载生产管线并做一致性校验。
func LoadPipeline(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Pipeline
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Pipeline) Save(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
