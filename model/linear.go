package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Ridge 实现了岭回归（Ridge Regression），是 Fallback 族的自训练回归器。
//
// 预测原理：
// 1. 线性加权求和: y = Intercept + sum(Weight_i * x_i)
// 2. 训练用正规方程求解: (XᵀX + λI) w = Xᵀy（截距项不做正则）
//
// λ>0 保证设计矩阵病态时仍可解，重训在相同数据上是确定性的。
type Ridge struct {
	ModelName string    `json:"name"`
	Intercept float64   `json:"intercept"`
	Weights   []float64 `json:"weights"`
	Lambda    float64   `json:"lambda"`
}

// NewRidge 创建未拟合的岭回归器。lambda<=0 时取默认 1e-3。
func NewRidge(name string, lambda float64) *Ridge {
	if lambda <= 0 {
		lambda = 1e-3
	}
	return &Ridge{ModelName: name, Lambda: lambda}
}

func (m *Ridge) Name() string { return m.ModelName }

// Fit 用正规方程在 (X, y) 上拟合权重与截距。
// X 的每行是一条样本；行宽必须一致且与 y 等长。
func (m *Ridge) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("ridge %s: need equal non-empty X/y, got %d/%d", m.ModelName, len(x), len(y))
	}
	cols := len(x[0])
	if cols == 0 {
		return fmt.Errorf("ridge %s: empty feature row", m.ModelName)
	}

	// 增广截距列：w 的最后一维是截距，不参与正则
	dim := cols + 1
	ata := make([][]float64, dim)
	for i := range ata {
		ata[i] = make([]float64, dim)
	}
	atb := make([]float64, dim)

	for r, row := range x {
		if len(row) != cols {
			return fmt.Errorf("ridge %s: ragged row %d", m.ModelName, r)
		}
		aug := make([]float64, dim)
		copy(aug, row)
		aug[cols] = 1.0
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				ata[i][j] += aug[i] * aug[j]
			}
			atb[i] += aug[i] * y[r]
		}
	}
	for i := 0; i < cols; i++ {
		ata[i][i] += m.Lambda
	}

	w, err := solveLinear(ata, atb)
	if err != nil {
		return fmt.Errorf("ridge %s: %w", m.ModelName, err)
	}
	m.Weights = w[:cols]
	m.Intercept = w[cols]
	return nil
}

// Predict 对单行特征求线性预测值。
func (m *Ridge) Predict(row []float64) (float64, error) {
	if len(row) != len(m.Weights) {
		return 0, fmt.Errorf("ridge %s: row width %d, model expects %d", m.ModelName, len(row), len(m.Weights))
	}
	score := m.Intercept
	for i, v := range row {
		score += m.Weights[i] * v
	}
	return score, nil
}

// Fitted 判断模型是否已拟合。
func (m *Ridge) Fitted() bool { return len(m.Weights) > 0 }

func LoadRidge(path string) (*Ridge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Ridge
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Ridge) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// solveLinear 用带部分主元的高斯消元求解 a·x = b。
// 矩阵规模是特征维度量级（~20），不值得引入线性代数库。
func solveLinear(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	// 工作副本，避免污染调用方
	m := make([][]float64, n)
	for i := range a {
		m[i] = make([]float64, n+1)
		copy(m[i], a[i])
		m[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if abs(m[r][col]) > abs(m[pivot][col]) {
				pivot = r
			}
		}
		if abs(m[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("singular system at column %d", col)
		}
		m[col], m[pivot] = m[pivot], m[col]

		for r := col + 1; r < n; r++ {
			factor := m[r][col] / m[col][col]
			for c := col; c <= n; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}

	x := make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		sum := m[r][n]
		for c := r + 1; c < n; c++ {
			sum -= m[r][c] * x[c]
		}
		x[r] = sum / m[r][r]
	}
	return x, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
