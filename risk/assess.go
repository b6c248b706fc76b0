package risk

import (
	"github.com/gridmind/gridkit/core"
)

// AssessBasic 基于 Fallback 族预测值做风险打分。
// 只看超支率与延期两个维度，等级上限 High。
func AssessBasic(pred map[string]float64) core.RiskAssessment {
	score := 0

	switch overrun := pred[core.TargetCostOverrunPct]; {
	case overrun > 20:
		score += 3
	case overrun > 10:
		score += 2
	case overrun > 5:
		score += 1
	}

	switch delay := pred[core.TargetDelayMonths]; {
	case delay > 6:
		score += 3
	case delay > 3:
		score += 2
	case delay > 1:
		score += 1
	}

	level := core.RiskLow
	switch {
	case score >= 5:
		level = core.RiskHigh
	case score >= 3:
		level = core.RiskMedium
	}
	return core.RiskAssessment{Level: level, Score: score}
}

// AssessProduction 基于生产 Pipeline 预测值做增强风险评估：
// 维度更多（绝对造价、工期相对计划的放大倍数、环境风险、供应商），
// 等级上探到 Critical，并给出命中的风险因素名单。
func AssessProduction(pred map[string]float64, vec *core.FeatureVector) core.RiskAssessment {
	score := 0
	var factors []string

	switch cost := pred[core.TargetCostPrediction]; {
	case cost > 200:
		score += 3
		factors = append(factors, "High cost prediction")
	case cost > 100:
		score += 2
		factors = append(factors, "Medium cost prediction")
	}

	switch overrun := pred[core.TargetOverrunPrediction]; {
	case overrun > 25:
		score += 3
		factors = append(factors, "High overrun risk")
	case overrun > 10:
		score += 2
		factors = append(factors, "Medium overrun risk")
	}

	timeline := pred[core.TargetTimelinePrediction]
	planned := vec.PlannedTimelineMonths
	switch {
	case timeline > planned*1.5:
		score += 3
		factors = append(factors, "Significant timeline extension")
	case timeline > planned*1.2:
		score += 2
		factors = append(factors, "Moderate timeline extension")
	}

	if vec.EnvRiskIndex > 0.7 {
		score += 2
		factors = append(factors, "High environmental risk")
	}
	if vec.VendorReliability < 0.6 {
		score += 2
		factors = append(factors, "Low vendor reliability")
	}

	level := core.RiskLow
	switch {
	case score >= 6:
		level = core.RiskCritical
	case score >= 4:
		level = core.RiskHigh
	case score >= 2:
		level = core.RiskMedium
	}
	return core.RiskAssessment{Level: level, Score: score, Factors: factors}
}

// AssessHeuristic 是启发式兜底路径的风险分级（无打分，仅阈值）。
func AssessHeuristic(overrun, delay float64) string {
	switch {
	case overrun > 20 || delay > 4:
		return core.RiskHigh
	case overrun > 10 || delay > 2:
		return core.RiskMedium
	default:
		return core.RiskLow
	}
}
