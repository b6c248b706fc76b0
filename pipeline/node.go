package pipeline

import (
	"context"

	"github.com/gridmind/gridkit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindNormalize Kind = "normalize" // 归一化阶段：任意命名约定的请求 -> 规范特征向量
	KindDerive    Kind = "derive"    // 派生阶段：计算工程派生特征
	KindInfer     Kind = "infer"     // 推理阶段：生产/Fallback/启发式三级出数
	KindAssess    Kind = "assess"    // 评估阶段：风险分级与置信度
	KindRecommend Kind = "recommend" // 建议阶段：行动建议与风险因素清单
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"读写 PredictionContext"的形态：各 Node 只写自己负责的字段。
type Node interface {
	Name() string
	Kind() Kind

	Process(ctx context.Context, pctx *core.PredictionContext) error
}
