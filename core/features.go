package core

// 项目类型（Project_Type）的规范取值。
const (
	ProjectSubstation       = "Substation"
	ProjectOverheadLine     = "Overhead Line"
	ProjectUndergroundCable = "Underground Cable"
)

// 地形（Terrain）的规范取值。
const (
	TerrainPlains      = "Plains"
	TerrainHilly       = "Hilly"
	TerrainDesert      = "Desert"
	TerrainCoastal     = "Coastal"
	TerrainUrban       = "Urban"
	TerrainMountainous = "Mountainous"
)

// 供需压力（Demand_Supply_Pressure）的规范取值。
// 规范约定为字符串枚举：生产 Pipeline 训练时使用的就是枚举值，
// Fallback 路径在特征帧构建时再做 Label 编码。
const (
	PressureLow    = "Low"
	PressureMedium = "Medium"
	PressureHigh   = "High"
)

// 规范特征名（与生产 Pipeline 的列名保持一致）。
const (
	FieldProjectType          = "Project_Type"
	FieldState                = "State"
	FieldLatitude             = "Latitude"
	FieldLongitude            = "Longitude"
	FieldTerrain              = "Terrain"
	FieldBaseCost             = "Base_Cost_Cr"
	FieldSteelPriceIndex      = "Steel_Price_Index"
	FieldCementPriceIndex     = "Cement_Price_Index"
	FieldLabourWage           = "Labour_Wage_RsPerDay"
	FieldRegulatoryDelay      = "Regulatory_Delay_months"
	FieldHistoricalDelayCount = "Historical_Delay_Count"
	FieldRainfall             = "Avg_Annual_Rainfall_cm"
	FieldVendorReliability    = "Vendor_Reliability"
	FieldMaterialAvailability = "Material_Availability_Index"
	FieldDemandSupplyPressure = "Demand_Supply_Pressure"
	FieldSkilledManpower      = "Skilled_Manpower_pct"
	FieldDelayMonths          = "Delay_months"
	FieldPlannedTimeline      = "Planned_Timeline_months"
	FieldCostPerPlannedMonth  = "Cost_per_planned_month"
	FieldEnvRiskIndex         = "Env_Risk_Index"
)

// FeatureVector 是项目预测输入的规范表示（Canonical Feature Vector）。
//
// 设计原则：
//   - 所有推理路径（生产 / Fallback / 启发式）只消费此结构，不再各自解析请求
//   - 每个字段都有定义好的默认值：请求缺字段只降低置信度，从不失败
//   - Provided 记录请求中实际出现过的规范字段，供置信度/完整度计算使用
type FeatureVector struct {
	ProjectType string
	State       string
	Terrain     string
	Latitude    float64
	Longitude   float64

	BaseCostCr       float64
	SteelPriceIndex  float64
	CementPriceIndex float64
	LabourWageRate   float64

	RegulatoryDelayMonths float64
	HistoricalDelayCount  float64
	DelayMonths           float64
	PlannedTimelineMonths float64

	VendorReliability    float64
	MaterialAvailability float64
	SkilledManpower      float64 // 0–1 小数（规范约定，百分比来源在边界处 /100）
	DemandSupplyPressure string
	RainfallCm           float64
	EnvRiskIndex         float64

	// Provided 记录规范化时请求里真实给出的字段（规范特征名）。
	Provided map[string]bool
}

// DefaultFeatureVector 返回全默认值的规范特征向量。
// 默认值来自训练数据的典型取值（孟买坐标、指数基准 100 等）。
func DefaultFeatureVector() *FeatureVector {
	return &FeatureVector{
		ProjectType:           ProjectOverheadLine,
		State:                 "Maharashtra",
		Terrain:               TerrainPlains,
		Latitude:              19.0760,
		Longitude:             72.8777,
		BaseCostCr:            100.0,
		SteelPriceIndex:       100.0,
		CementPriceIndex:      100.0,
		LabourWageRate:        500.0,
		RegulatoryDelayMonths: 2.0,
		HistoricalDelayCount:  3.0,
		DelayMonths:           0.0,
		PlannedTimelineMonths: 12.0,
		VendorReliability:     0.8,
		MaterialAvailability:  0.8,
		SkilledManpower:       0.70,
		DemandSupplyPressure:  PressureMedium,
		RainfallCm:            100.0,
		EnvRiskIndex:          0.3,
		Provided:              make(map[string]bool),
	}
}

// Has 判断某规范字段是否由请求显式提供。
func (v *FeatureVector) Has(field string) bool {
	if v.Provided == nil {
		return false
	}
	return v.Provided[field]
}

// HasAll 判断一组规范字段是否全部由请求显式提供。
func (v *FeatureVector) HasAll(fields ...string) bool {
	for _, f := range fields {
		if !v.Has(f) {
			return false
		}
	}
	return true
}

// DerivedFeatures 是由规范向量计算出的工程特征（只追加，不覆盖规范字段）。
type DerivedFeatures struct {
	CostPerMonth      float64 // Base_Cost_Cr / max(Planned_Timeline_months, 1)
	WageCostRatio     float64 // Labour_Wage_RsPerDay / max(Base_Cost_Cr, eps)
	PriceVolatility   float64 // (|Steel-100| + |Cement-100|) / 2
	ResourceRisk      float64 // (2 - Vendor - Material) / 2
	TerrainRiskScore  float64 // 地形序数 1–6，未知取 1
	ProjectComplexity float64 // 项目类型序数 1–3，未知取 1
}
