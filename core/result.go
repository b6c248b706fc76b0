package core

import "time"

// 预测目标名。生产族与 Fallback 族各自有独立的目标键，
// 接口层统一折算进 Outcome.Predictions。
const (
	// Fallback 族目标（多输出模型一次产出全部四个）
	TargetDelayMonths    = "delay_months"
	TargetCostOverrunPct = "cost_overrun_pct"
	TargetTotalCostCr    = "total_cost_cr"
	TargetTimelineMonths = "timeline_months"

	// 生产 Pipeline 目标
	TargetCostPrediction     = "cost_prediction"
	TargetOverrunPrediction  = "overrun_prediction"
	TargetTimelinePrediction = "timeline_prediction"
)

// 风险等级（由阈值规则从数值预测折算出的粗分类）。
const (
	RiskLow      = "Low"
	RiskMedium   = "Medium"
	RiskHigh     = "High"
	RiskCritical = "Critical"
)

// RiskAssessment 是风险评估结果。
// Factors 仅在生产路径（production-aware 评估器）下非空。
type RiskAssessment struct {
	Level   string   `json:"level"`
	Score   int      `json:"score"`
	Factors []string `json:"factors,omitempty"`
}

// Recommendation 是一条规则触发的行动建议。
type Recommendation struct {
	Category    string   `json:"type"`
	Priority    string   `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
}

// RiskFactor 是单个风险因素及其缓解措施。
type RiskFactor struct {
	Factor     string `json:"factor"`
	Severity   string `json:"severity"`
	Impact     string `json:"impact"`
	Mitigation string `json:"mitigation"`
}

// RiskFactors 按类别归组的风险因素清单。
type RiskFactors struct {
	Financial     []RiskFactor `json:"financial_risks"`
	Operational   []RiskFactor `json:"operational_risks"`
	Environmental []RiskFactor `json:"environmental_risks"`
	External      []RiskFactor `json:"external_risks"`
}

// Predictions 是对外暴露的预测数值（已做物理约束收口：
// 超支率 ∈ [0,100]、延期 ≥ 0、总造价 ≥ 基准造价、工期 ≥ 1）。
type Predictions struct {
	CostOverrunProbability  float64 `json:"cost_overrun_probability"`
	PredictedDelayMonths    float64 `json:"predicted_delay_months"`
	PredictedTotalCost      float64 `json:"predicted_total_cost"`
	PredictedTimelineMonths float64 `json:"predicted_timeline_months"`
	RiskCategory            string  `json:"risk_category"`
	ConfidenceScore         float64 `json:"confidence_score"`
}

// Analysis 是预测的元信息。
type Analysis struct {
	ModelVersion     string    `json:"model_version"`
	PredictionDate   time.Time `json:"prediction_date"`
	DataCompleteness float64   `json:"data_completeness"`
	Note             string    `json:"note,omitempty"`
}

// Outcome 是一次完整预测的响应结构。
// 无论走生产、Fallback 还是启发式路径，结构始终完整。
type Outcome struct {
	Predictions     Predictions      `json:"predictions"`
	Recommendations []Recommendation `json:"recommendations"`
	RiskFactors     RiskFactors      `json:"risk_factors"`
	Analysis        Analysis         `json:"analysis"`
}

// BatchResult 是批量预测中单个项目的结果：Outcome 与 Err 二选一。
type BatchResult struct {
	Outcome *Outcome `json:"outcome,omitempty"`
	Err     string   `json:"error,omitempty"`
}
