// Package gridkit 是一个电网基建项目预测工具包（Grid Prediction Kit）。
//
// 设计要点：
// - Pipeline-first: 预测流程通过 Node 串联（Normalize → Derive → Infer → Assess → Recommend）
// - 双模型族: 生产 Pipeline（外部训练、自带编码/缩放）优先，自训练 Fallback 族兜底
// - 严格降级: 模型不可用时退化为规则启发式，接口层永远返回完整结果结构
package gridkit

import "github.com/gridmind/gridkit/pipeline"

// 轻量 facade：便于用户直接 import "gridkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindNormalize = pipeline.KindNormalize
	KindDerive    = pipeline.KindDerive
	KindInfer     = pipeline.KindInfer
	KindAssess    = pipeline.KindAssess
	KindRecommend = pipeline.KindRecommend
)
