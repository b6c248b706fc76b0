package feature

import "github.com/gridmind/gridkit/core"

// 派生特征在 Fallback 特征帧中的列名。
const (
	ColCostPerMonth      = "Cost_per_Month"
	ColWageCostRatio     = "Wage_Cost_Ratio"
	ColPriceVolatility   = "Price_Volatility"
	ColResourceRisk      = "Resource_Risk"
	ColTerrainRiskScore  = "Terrain_Risk_Score"
	ColProjectComplexity = "Project_Complexity"
)

// FallbackColumns 是 Fallback 族特征帧的默认列序。
// 训练与推理必须使用同一份列序（注册表会把实际训练时的列序持久化）。
var FallbackColumns = []string{
	core.FieldProjectType,
	core.FieldTerrain,
	core.FieldBaseCost,
	core.FieldSteelPriceIndex,
	core.FieldCementPriceIndex,
	core.FieldLabourWage,
	core.FieldRegulatoryDelay,
	core.FieldHistoricalDelayCount,
	core.FieldRainfall,
	core.FieldVendorReliability,
	core.FieldMaterialAvailability,
	core.FieldDemandSupplyPressure,
	core.FieldSkilledManpower,
	core.FieldPlannedTimeline,
	ColCostPerMonth,
	ColWageCostRatio,
	ColPriceVolatility,
	ColResourceRisk,
	ColTerrainRiskScore,
	ColProjectComplexity,
}

// CategoricalColumns 是 Fallback 帧中需要 Label 编码的列。
var CategoricalColumns = []string{
	core.FieldProjectType,
	core.FieldTerrain,
	core.FieldDemandSupplyPressure,
}

// IsCategorical 判断某列是否需要 Label 编码。
func IsCategorical(column string) bool {
	for _, c := range CategoricalColumns {
		if c == column {
			return true
		}
	}
	return false
}

// ColumnValue 按列名从规范向量 + 派生特征取原始值（编码/缩放之前）；
// 类别列返回字符串，数值列返回 float64。
func ColumnValue(column string, vec *core.FeatureVector, derived *core.DerivedFeatures) (float64, string) {
	switch column {
	case core.FieldProjectType:
		return 0, vec.ProjectType
	case core.FieldTerrain:
		return 0, vec.Terrain
	case core.FieldDemandSupplyPressure:
		return 0, vec.DemandSupplyPressure
	case core.FieldBaseCost:
		return vec.BaseCostCr, ""
	case core.FieldSteelPriceIndex:
		return vec.SteelPriceIndex, ""
	case core.FieldCementPriceIndex:
		return vec.CementPriceIndex, ""
	case core.FieldLabourWage:
		return vec.LabourWageRate, ""
	case core.FieldRegulatoryDelay:
		return vec.RegulatoryDelayMonths, ""
	case core.FieldHistoricalDelayCount:
		return vec.HistoricalDelayCount, ""
	case core.FieldRainfall:
		return vec.RainfallCm, ""
	case core.FieldVendorReliability:
		return vec.VendorReliability, ""
	case core.FieldMaterialAvailability:
		return vec.MaterialAvailability, ""
	case core.FieldSkilledManpower:
		return vec.SkilledManpower, ""
	case core.FieldPlannedTimeline:
		return vec.PlannedTimelineMonths, ""
	case ColCostPerMonth:
		return derived.CostPerMonth, ""
	case ColWageCostRatio:
		return derived.WageCostRatio, ""
	case ColPriceVolatility:
		return derived.PriceVolatility, ""
	case ColResourceRisk:
		return derived.ResourceRisk, ""
	case ColTerrainRiskScore:
		return derived.TerrainRiskScore, ""
	case ColProjectComplexity:
		return derived.ProjectComplexity, ""
	default:
		return 0, ""
	}
}

// BuildFallbackRow 按给定列序构建 Fallback 推理行：
// 类别列走共享编码器 Transform，数值列走共享缩放器 Transform（都不重新拟合）。
func BuildFallbackRow(
	columns []string,
	vec *core.FeatureVector,
	derived *core.DerivedFeatures,
	encoders *LabelEncoderSet,
	scaler *StandardScaler,
) []float64 {
	row := make([]float64, len(columns))
	for i, col := range columns {
		num, cat := ColumnValue(col, vec, derived)
		if IsCategorical(col) {
			row[i] = encoders.Transform(col, cat)
			continue
		}
		row[i] = scaler.Transform(col, num)
	}
	return row
}
