package risk

import "github.com/gridmind/gridkit/core"

// 数据完整度的字段分组：必填字段权重 ×2。
var (
	completenessRequired = []string{
		core.FieldProjectType,
		core.FieldTerrain,
		core.FieldBaseCost,
		core.FieldLabourWage,
		core.FieldVendorReliability,
		core.FieldMaterialAvailability,
		core.FieldSkilledManpower,
	}
	completenessOptional = []string{
		core.FieldSteelPriceIndex,
		core.FieldCementPriceIndex,
		core.FieldRegulatoryDelay,
		core.FieldRainfall,
		core.FieldDemandSupplyPressure,
		core.FieldHistoricalDelayCount,
	}
)

// DataCompleteness 计算输入数据完整度 [0,100]。
// 公式: (必填提供数×2 + 可选提供数) / (必填总数×2 + 可选总数) × 100。
func DataCompleteness(vec *core.FeatureVector) float64 {
	required := 0
	for _, field := range completenessRequired {
		if vec.Has(field) {
			required++
		}
	}
	optional := 0
	for _, field := range completenessOptional {
		if vec.Has(field) {
			optional++
		}
	}
	max := len(completenessRequired)*2 + len(completenessOptional)
	return round1(float64(required*2+optional) / float64(max) * 100)
}
