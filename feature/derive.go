package feature

import (
	"math"

	"github.com/gridmind/gridkit/core"
)

// terrainRisk 是地形风险序数表，未入表的地形取最低档 1。
var terrainRisk = map[string]float64{
	core.TerrainPlains:      1,
	core.TerrainHilly:       2,
	core.TerrainDesert:      3,
	core.TerrainCoastal:     4,
	core.TerrainUrban:       5,
	core.TerrainMountainous: 6,
}

// projectComplexity 是项目类型复杂度序数表，未入表的类型取最低档 1。
var projectComplexity = map[string]float64{
	core.ProjectOverheadLine:     1,
	core.ProjectSubstation:       2,
	core.ProjectUndergroundCable: 3,
}

const wageRatioEps = 1e-9

// Derive 从规范向量计算工程特征（Derived Feature Calculator）。
// 纯函数：只读输入，无 I/O。分母做了下限保护，
// PlannedTimeline=0 或 BaseCost=0 时不会出现除零。
func Derive(vec *core.FeatureVector) *core.DerivedFeatures {
	timeline := math.Max(vec.PlannedTimelineMonths, 1)
	baseCost := math.Max(vec.BaseCostCr, wageRatioEps)

	return &core.DerivedFeatures{
		CostPerMonth:      vec.BaseCostCr / timeline,
		WageCostRatio:     vec.LabourWageRate / baseCost,
		PriceVolatility:   (math.Abs(vec.SteelPriceIndex-100) + math.Abs(vec.CementPriceIndex-100)) / 2,
		ResourceRisk:      (2 - vec.VendorReliability - vec.MaterialAvailability) / 2,
		TerrainRiskScore:  ordinalOrDefault(terrainRisk, vec.Terrain),
		ProjectComplexity: ordinalOrDefault(projectComplexity, vec.ProjectType),
	}
}

func ordinalOrDefault(table map[string]float64, key string) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return 1
}
