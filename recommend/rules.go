package recommend

import "github.com/gridmind/gridkit/core"

// DefaultRules 是内置的建议规则表。
// 阈值与文案来自项目管理侧约定：成本/工期看预测值，资源/地形/气候看输入。
func DefaultRules() []Rule {
	return []Rule{
		{
			When:        "pred.cost_overrun_pct > 15.0",
			Category:    "cost",
			Priority:    PriorityHigh,
			Title:       "High Cost Overrun Risk Detected",
			Description: "Model predicts %.1f%% cost overrun. Implement strict cost controls.",
			Value:       "pred.cost_overrun_pct",
			Actions: []string{
				"Negotiate fixed-price contracts with key vendors",
				"Implement daily cost tracking and reporting",
				"Consider value engineering to reduce scope",
				"Increase contingency budget by 20-25%",
			},
		},
		{
			When:        "pred.cost_overrun_pct > 8.0 && pred.cost_overrun_pct <= 15.0",
			Category:    "cost",
			Priority:    PriorityMedium,
			Title:       "Moderate Cost Risk",
			Description: "Model predicts %.1f%% cost overrun. Monitor cost trends closely.",
			Value:       "pred.cost_overrun_pct",
			Actions: []string{
				"Weekly cost review meetings",
				"Lock in material prices where possible",
				"Monitor vendor performance closely",
			},
		},
		{
			When:        "pred.delay_months > 4.0",
			Category:    "timeline",
			Priority:    PriorityHigh,
			Title:       "Significant Delays Expected",
			Description: "Model predicts %.1f months delay. Implement acceleration measures.",
			Value:       "pred.delay_months",
			Actions: []string{
				"Consider parallel execution of activities",
				"Engage additional resources for critical path",
				"Fast-track permitting and approvals",
				"Implement 24/7 work schedule if feasible",
			},
		},
		{
			When:        "pred.delay_months > 2.0 && pred.delay_months <= 4.0",
			Category:    "timeline",
			Priority:    PriorityMedium,
			Title:       "Potential Timeline Risks",
			Description: "Model predicts %.1f months delay. Optimize scheduling.",
			Value:       "pred.delay_months",
			Actions: []string{
				"Review critical path activities",
				"Improve coordination between teams",
				"Address resource constraints proactively",
			},
		},
		{
			When:        "input.Vendor_Reliability < 0.6",
			Category:    "vendor",
			Priority:    PriorityHigh,
			Title:       "Vendor Reliability Concerns",
			Description: "Low vendor reliability score detected. Implement enhanced monitoring.",
			Actions: []string{
				"Establish backup vendors for critical items",
				"Implement vendor performance scorecards",
				"Increase quality inspection frequency",
				"Consider vendor development programs",
			},
		},
		{
			When:        "input.Material_Availability_Index < 0.7",
			Category:    "materials",
			Priority:    PriorityMedium,
			Title:       "Material Availability Risk",
			Description: "Limited material availability detected. Secure supply chains.",
			Actions: []string{
				"Pre-order critical materials",
				"Identify alternative suppliers",
				"Consider material substitutions where appropriate",
				"Implement just-in-time inventory management",
			},
		},
		{
			When:        "input.Skilled_Manpower_pct < 0.6",
			Category:    "manpower",
			Priority:    PriorityHigh,
			Title:       "Skilled Manpower Shortage",
			Description: "Only %.0f%% skilled manpower available. Address resource gaps.",
			Value:       "input.Skilled_Manpower_pct * 100.0",
			Actions: []string{
				"Implement training programs for local workers",
				"Partner with technical institutes",
				"Consider bringing in skilled workers from other regions",
				"Increase automation where possible",
			},
		},
		{
			When:        `input.Terrain == "` + core.TerrainMountainous + `" || input.Terrain == "` + core.TerrainUrban + `"`,
			Category:    "terrain",
			Priority:    PriorityMedium,
			Title:       "Complex Terrain Challenges",
			Description: "Complex terrain requires specialized approach and equipment.",
			Actions: []string{
				"Engage specialized contractors with terrain experience",
				"Conduct detailed geological surveys",
				"Use specialized equipment and techniques",
				"Allow additional time for logistics",
			},
		},
		{
			When:        "input.Avg_Annual_Rainfall_cm > 150.0",
			Category:    "environmental",
			Priority:    PriorityMedium,
			Title:       "High Rainfall Area",
			Description: "Annual rainfall of %.0fcm may cause delays. Plan for weather risks.",
			Value:       "input.Avg_Annual_Rainfall_cm",
			Actions: []string{
				"Schedule outdoor work during dry season",
				"Invest in weather protection equipment",
				"Develop monsoon contingency plans",
				"Consider weather insurance",
			},
		},
	}
}
