package risk

import (
	"fmt"
	"math"

	"github.com/gridmind/gridkit/core"
)

// AnalyzeFactors 把输入与预测折算为四类风险因素清单
// （财务 / 运营 / 环境 / 外部），每条带严重度、影响与缓解措施。
func AnalyzeFactors(vec *core.FeatureVector, pred map[string]float64) core.RiskFactors {
	var out core.RiskFactors

	// 财务风险
	if overrun := pred[core.TargetCostOverrunPct]; overrun > 10 {
		severity := core.RiskMedium
		if overrun > 20 {
			severity = core.RiskHigh
		}
		out.Financial = append(out.Financial, core.RiskFactor{
			Factor:     "Cost Overrun Risk",
			Severity:   severity,
			Impact:     fmt.Sprintf("%.1f%% predicted overrun", overrun),
			Mitigation: "Implement strict cost controls and fixed-price contracts",
		})
	}
	if math.Abs(vec.SteelPriceIndex-100) > 15 || math.Abs(vec.CementPriceIndex-100) > 15 {
		out.Financial = append(out.Financial, core.RiskFactor{
			Factor:     "Material Price Volatility",
			Severity:   core.RiskMedium,
			Impact:     "Price fluctuations affecting project costs",
			Mitigation: "Lock in material prices through forward contracts",
		})
	}

	// 运营风险
	if vec.VendorReliability < 0.7 {
		severity := core.RiskMedium
		if vec.VendorReliability < 0.6 {
			severity = core.RiskHigh
		}
		out.Operational = append(out.Operational, core.RiskFactor{
			Factor:     "Vendor Performance Risk",
			Severity:   severity,
			Impact:     "Potential delays due to vendor issues",
			Mitigation: "Establish backup vendors and performance monitoring",
		})
	}
	if manpower := vec.SkilledManpower * 100; manpower < 70 {
		severity := core.RiskMedium
		if manpower < 50 {
			severity = core.RiskHigh
		}
		out.Operational = append(out.Operational, core.RiskFactor{
			Factor:     "Skilled Labor Shortage",
			Severity:   severity,
			Impact:     fmt.Sprintf("Only %.0f%% skilled manpower available", manpower),
			Mitigation: "Training programs and alternative sourcing strategies",
		})
	}

	// 环境风险
	switch vec.Terrain {
	case core.TerrainMountainous, core.TerrainUrban, core.TerrainCoastal:
		severity := core.RiskMedium
		if vec.Terrain == core.TerrainMountainous {
			severity = core.RiskHigh
		}
		out.Environmental = append(out.Environmental, core.RiskFactor{
			Factor:     fmt.Sprintf("%s Terrain Complexity", vec.Terrain),
			Severity:   severity,
			Impact:     "Increased construction complexity and costs",
			Mitigation: "Specialized contractors and equipment",
		})
	}
	if vec.RainfallCm > 150 {
		out.Environmental = append(out.Environmental, core.RiskFactor{
			Factor:     "High Rainfall Impact",
			Severity:   core.RiskMedium,
			Impact:     fmt.Sprintf("%.0fcm annual rainfall may cause delays", vec.RainfallCm),
			Mitigation: "Weather-based scheduling and protection measures",
		})
	}

	// 外部风险
	if vec.RegulatoryDelayMonths > 3 {
		out.External = append(out.External, core.RiskFactor{
			Factor:     "Regulatory Approval Delays",
			Severity:   core.RiskMedium,
			Impact:     fmt.Sprintf("%.0f months estimated delays", vec.RegulatoryDelayMonths),
			Mitigation: "Early engagement with regulatory authorities",
		})
	}
	if vec.DemandSupplyPressure == core.PressureHigh {
		out.External = append(out.External, core.RiskFactor{
			Factor:     "Market Demand Pressure",
			Severity:   core.RiskMedium,
			Impact:     "Competition for resources and higher costs",
			Mitigation: "Early resource booking and strategic partnerships",
		})
	}

	return out
}
