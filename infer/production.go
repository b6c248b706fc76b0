package infer

import (
	"context"

	"github.com/gridmind/gridkit/core"
	"github.com/gridmind/gridkit/registry"
)

// 生产 Pipeline 侧的类别修正表。与规范化层的同义词表独立：
// 这里兜底的是已经过规范化、但仍不在训练词表里的历史取值。
var (
	productionTypeFixups = map[string]string{
		"Transmission": core.ProjectOverheadLine,
		"Distribution": core.ProjectUndergroundCable,
	}
	productionTerrainFixups = map[string]string{
		"Plain":    core.TerrainPlains,
		"Hill":     core.TerrainHilly,
		"Mountain": core.TerrainMountainous,
	}
)

// Production 是生产 Pipeline 族的推理策略。
//
// 设计原则：
//   - 按目标故障隔离：单个 Pipeline 预测失败时该目标记 0.0，不中断其余目标
//   - 帧构建只依赖规范向量与派生特征，每次推理从注册表取最新快照
type Production struct {
	registry *registry.Registry
}

func NewProduction(r *registry.Registry) *Production {
	return &Production{registry: r}
}

func (p *Production) Name() string { return StrategyProduction }

// Available 要求 3 个生产 Pipeline 至少就绪 2 个。
func (p *Production) Available() bool {
	return p.registry.Snapshot().ProductionReady()
}

func (p *Production) Predict(ctx context.Context, vec *core.FeatureVector, derived *core.DerivedFeatures) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := p.registry.Snapshot()
	if !s.ProductionReady() {
		return nil, core.ErrModelsUnavailable
	}

	frame := productionFrame(vec, derived)
	out := make(map[string]float64, len(s.Production))
	for target, pipe := range s.Production {
		v, err := pipe.Predict(frame)
		if err != nil {
			out[target] = 0.0
			continue
		}
		out[target] = v
	}
	return out, nil
}

// productionFrame 组装 20 列命名特征帧（类别列保留字符串，由 Pipeline 自编码）。
func productionFrame(vec *core.FeatureVector, derived *core.DerivedFeatures) map[string]any {
	projectType := vec.ProjectType
	if fixed, ok := productionTypeFixups[projectType]; ok {
		projectType = fixed
	}
	terrain := vec.Terrain
	if fixed, ok := productionTerrainFixups[terrain]; ok {
		terrain = fixed
	}

	return map[string]any{
		core.FieldProjectType:          projectType,
		core.FieldState:                vec.State,
		core.FieldLatitude:             vec.Latitude,
		core.FieldLongitude:            vec.Longitude,
		core.FieldTerrain:              terrain,
		core.FieldBaseCost:             vec.BaseCostCr,
		core.FieldSteelPriceIndex:      vec.SteelPriceIndex,
		core.FieldCementPriceIndex:     vec.CementPriceIndex,
		core.FieldLabourWage:           vec.LabourWageRate,
		core.FieldRegulatoryDelay:      vec.RegulatoryDelayMonths,
		core.FieldHistoricalDelayCount: vec.HistoricalDelayCount,
		core.FieldRainfall:             vec.RainfallCm,
		core.FieldVendorReliability:    vec.VendorReliability,
		core.FieldMaterialAvailability: vec.MaterialAvailability,
		core.FieldDemandSupplyPressure: vec.DemandSupplyPressure,
		core.FieldSkilledManpower:      vec.SkilledManpower,
		core.FieldDelayMonths:          vec.DelayMonths,
		core.FieldPlannedTimeline:      vec.PlannedTimelineMonths,
		core.FieldCostPerPlannedMonth:  derived.CostPerMonth,
		core.FieldEnvRiskIndex:         vec.EnvRiskIndex,
	}
}
