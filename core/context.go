package core

// PredictionContext 承载一次预测的全部中间状态，贯穿整个 Pipeline 透传。
// 各 Node 只读取前序阶段写入的字段，写入自己负责的字段。
type PredictionContext struct {
	// Input 是原始请求（任意命名约定的 key -> 标量值）
	Input map[string]any

	// Vector 由 Normalize 阶段写入
	Vector *FeatureVector

	// Derived 由 Derive 阶段写入
	Derived *DerivedFeatures

	// Raw 由 Infer 阶段写入：目标名 -> 原始预测值
	Raw map[string]float64

	// StrategyName 记录实际执行推理的策略（production / fallback / heuristic）
	StrategyName string

	// Risk / Confidence 由 Assess 阶段写入
	Risk       *RiskAssessment
	Confidence float64

	// Recommendations / Factors 由 Recommend 阶段写入
	Recommendations []Recommendation
	Factors         *RiskFactors
}

// NewPredictionContext 创建一个携带原始请求的预测上下文。
func NewPredictionContext(input map[string]any) *PredictionContext {
	return &PredictionContext{Input: input, Raw: make(map[string]float64)}
}
