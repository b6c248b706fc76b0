package dataset

import (
	"fmt"

	"github.com/gridmind/gridkit/core"
	"github.com/gridmind/gridkit/feature"
)

// TargetColumns 把输出目标键映射到训练 CSV 中的目标列名。
var TargetColumns = map[string]string{
	core.TargetDelayMonths:    "Delay_months",
	core.TargetCostOverrunPct: "Overrun_pct",
	core.TargetTotalCostCr:    "Total_Cost_Cr",
	core.TargetTimelineMonths: "Timeline_months",
}

// TargetOrder 是多输出模型的目标顺序（训练与推理共用）。
var TargetOrder = []string{
	core.TargetDelayMonths,
	core.TargetCostOverrunPct,
	core.TargetTotalCostCr,
	core.TargetTimelineMonths,
}

// TrainingSet 是可直接喂给回归器的训练物料：
// 编码 + 标准化后的特征矩阵、按目标键组织的标签列，
// 以及训练时拟合出的编码器与缩放器（推理端必须复用同一份）。
type TrainingSet struct {
	Columns  []string
	X        [][]float64
	Targets  map[string][]float64
	Encoders *feature.LabelEncoderSet
	Scaler   *feature.StandardScaler
}

// BuildTrainingSet 从原始训练表构建训练集。
//
// 流程与推理路径严格对齐：每行先过规范化（同一套别名/同义词表），
// 再算派生特征，类别列拟合 Label 编码、数值列拟合标准化，
// 最后按 Fallback 列序生成特征矩阵。
func BuildTrainingSet(frame *Frame) (*TrainingSet, error) {
	for name, col := range TargetColumns {
		if !frame.HasColumn(col) {
			return nil, fmt.Errorf("dataset: target column %s (for %s) missing", col, name)
		}
	}

	norm := feature.NewNormalizer()
	columns := feature.FallbackColumns

	vecs := make([]*core.FeatureVector, frame.Len())
	devs := make([]*core.DerivedFeatures, frame.Len())
	for i, row := range frame.Rows {
		input := make(map[string]any, len(row))
		for k, v := range row {
			input[k] = v
		}
		vecs[i] = norm.Normalize(input)
		devs[i] = feature.Derive(vecs[i])
	}

	encoders := feature.NewLabelEncoderSet()
	for _, col := range feature.CategoricalColumns {
		values := make([]string, frame.Len())
		for i := range vecs {
			_, values[i] = feature.ColumnValue(col, vecs[i], devs[i])
		}
		encoders.Fit(col, values)
	}

	numeric := make(map[string][]float64, len(columns))
	for _, col := range columns {
		if feature.IsCategorical(col) {
			continue
		}
		vals := make([]float64, frame.Len())
		for i := range vecs {
			vals[i], _ = feature.ColumnValue(col, vecs[i], devs[i])
		}
		numeric[col] = vals
	}
	scaler := feature.NewStandardScaler()
	scaler.Fit(numeric)

	x := make([][]float64, frame.Len())
	for i := range vecs {
		x[i] = feature.BuildFallbackRow(columns, vecs[i], devs[i], encoders, scaler)
	}

	targets := make(map[string][]float64, len(TargetColumns))
	for name, col := range TargetColumns {
		y, err := frame.Floats(col)
		if err != nil {
			return nil, err
		}
		targets[name] = y
	}

	return &TrainingSet{
		Columns:  append([]string(nil), columns...),
		X:        x,
		Targets:  targets,
		Encoders: encoders,
		Scaler:   scaler,
	}, nil
}

// BuildMatrix 用已拟合的编码器/缩放器按给定列序构建特征矩阵（不重新拟合）。
// 单目标重训走这里，保证其余模型的特征空间不被动到。
func BuildMatrix(
	frame *Frame,
	columns []string,
	encoders *feature.LabelEncoderSet,
	scaler *feature.StandardScaler,
) [][]float64 {
	norm := feature.NewNormalizer()
	x := make([][]float64, frame.Len())
	for i, row := range frame.Rows {
		input := make(map[string]any, len(row))
		for k, v := range row {
			input[k] = v
		}
		vec := norm.Normalize(input)
		derived := feature.Derive(vec)
		x[i] = feature.BuildFallbackRow(columns, vec, derived, encoders, scaler)
	}
	return x
}
