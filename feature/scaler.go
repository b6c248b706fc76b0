package feature

import "math"

// StandardScaler 是 Fallback 族共享的数值标准化器（Z-score）。
// 公式: z = (x - μ) / σ。训练时 Fit，推理时只 Transform。
type StandardScaler struct {
	Mean map[string]float64 `json:"mean"`
	Std  map[string]float64 `json:"std"`
}

func NewStandardScaler() *StandardScaler {
	return &StandardScaler{
		Mean: make(map[string]float64),
		Std:  make(map[string]float64),
	}
}

// Fit 按列拟合均值与标准差。
func (s *StandardScaler) Fit(columns map[string][]float64) {
	for col, values := range columns {
		if len(values) == 0 {
			continue
		}
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		mean := sum / float64(len(values))

		variance := 0.0
		for _, v := range values {
			variance += (v - mean) * (v - mean)
		}
		s.Mean[col] = mean
		s.Std[col] = math.Sqrt(variance / float64(len(values)))
	}
}

// Transform 标准化单个值；σ=0 的列原值透传。
func (s *StandardScaler) Transform(column string, value float64) float64 {
	std := s.Std[column]
	if std > 0 {
		return (value - s.Mean[column]) / std
	}
	return value
}

// Has 判断某列是否已拟合。
func (s *StandardScaler) Has(column string) bool {
	_, ok := s.Mean[column]
	return ok
}
