package core

import "context"

// InferenceStrategy 是推理策略的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（infer）实现
//   - 生产 Pipeline 路径与 Fallback 路径结构差异大，各自实现为独立策略，
//     由单一的优先级函数选择，而不是在调用点内联分支
//
// 实现：
//   - infer.Production 实现此接口（生产 Pipeline 族）
//   - infer.Fallback 实现此接口（自训练 Fallback 族）
//   - infer.Heuristic 实现此接口（规则启发式，永远可用）
type InferenceStrategy interface {
	// Name 返回策略名（用于结果标注/观测）
	Name() string

	// Available 返回该策略当前是否可用（模型族是否就绪）
	Available() bool

	// Predict 产出 目标名 -> 预测值。
	// 单个模型失败时按目标隔离（该目标记 0.0），不中断整体。
	Predict(ctx context.Context, vec *FeatureVector, derived *DerivedFeatures) (map[string]float64, error)
}

// ModelInfo 是模型族的状态报告。
type ModelInfo struct {
	Loaded           bool     `json:"loaded"`
	ProductionReady  bool     `json:"production_ready"`
	AvailableTargets []string `json:"available_targets"`
	FeatureSchema    []string `json:"feature_schema"`
	ModelSource      string   `json:"model_source"` // production_pipeline / auto_trained
}
