package risk

import (
	"math"

	"github.com/gridmind/gridkit/core"
)

// basicKeyFields 是基础置信度的关键字段：缺一个基础分就掉 20。
var basicKeyFields = []string{
	core.FieldBaseCost,
	core.FieldVendorReliability,
	core.FieldMaterialAvailability,
	core.FieldSkilledManpower,
	core.FieldPlannedTimeline,
}

// productionRequiredFields 是生产置信度的必填字段（完整度满分 40）。
var productionRequiredFields = []string{
	core.FieldProjectType,
	core.FieldState,
	core.FieldBaseCost,
	core.FieldPlannedTimeline,
	core.FieldVendorReliability,
	core.FieldMaterialAvailability,
}

// ConfidenceBasic 计算 Fallback 路径的预测置信度 [0,100]。
// 基础分 = 关键字段提供比例 ×100，再按数据质量加分，封顶 100。
func ConfidenceBasic(vec *core.FeatureVector) float64 {
	provided := 0
	for _, field := range basicKeyFields {
		if vec.Has(field) {
			provided++
		}
	}
	confidence := float64(provided) / float64(len(basicKeyFields)) * 100

	if vec.VendorReliability > 0.8 {
		confidence += 5
	}
	if vec.MaterialAvailability > 0.8 {
		confidence += 5
	}
	if vec.HistoricalDelayCount < 3 {
		confidence += 5
	}
	return round1(math.Min(100, confidence))
}

// ConfidenceProduction 计算生产路径的预测置信度 [0,100]。
// 完整度最多 40 分，数据质量最多 55 分，经纬度齐备再加 5 分。
func ConfidenceProduction(vec *core.FeatureVector) float64 {
	provided := 0
	for _, field := range productionRequiredFields {
		if vec.Has(field) {
			provided++
		}
	}
	confidence := float64(provided) / float64(len(productionRequiredFields)) * 40

	switch {
	case vec.VendorReliability >= 0.8:
		confidence += 15
	case vec.VendorReliability >= 0.6:
		confidence += 10
	case vec.VendorReliability >= 0.4:
		confidence += 5
	}

	switch {
	case vec.MaterialAvailability >= 0.8:
		confidence += 15
	case vec.MaterialAvailability >= 0.6:
		confidence += 10
	case vec.MaterialAvailability >= 0.4:
		confidence += 5
	}

	switch {
	case vec.EnvRiskIndex <= 0.3:
		confidence += 10
	case vec.EnvRiskIndex <= 0.5:
		confidence += 5
	}

	switch {
	case vec.HistoricalDelayCount <= 2:
		confidence += 10
	case vec.HistoricalDelayCount <= 5:
		confidence += 5
	}

	if vec.Has(core.FieldLatitude) && vec.Has(core.FieldLongitude) {
		confidence += 5
	}
	return round1(math.Min(100, confidence))
}

// HeuristicConfidence 是启发式兜底路径的固定置信度。
const HeuristicConfidence = 60.0

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
